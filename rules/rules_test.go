package rules

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/cellsim/cellapi"
	"github.com/pthm-cable/cellsim/environment"
	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
)

// fakeGrid is a minimal Grid implementation used to exercise rules in
// isolation from the world package's scheduler.
type fakeGrid struct {
	w, h       int
	cells      []particle.Particle
	env        *environment.Field
	generation uint8
	dirty      []int
	rng        *rand.Rand
}

func newFakeGrid(w, h int) *fakeGrid {
	cells := make([]particle.Particle, w*h)
	for i := range cells {
		cells[i] = particle.New(material.Empty)
	}
	return &fakeGrid{
		w: w, h: h,
		cells: cells,
		env:   environment.New(w, h, 1),
		rng:   rand.New(rand.NewSource(7)),
	}
}

func (g *fakeGrid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0, false
	}
	return y*g.w + x, true
}

func (g *fakeGrid) Particle(x, y int) (particle.Particle, bool) {
	i, ok := g.index(x, y)
	if !ok {
		return particle.Particle{}, false
	}
	return g.cells[i], true
}

func (g *fakeGrid) WriteParticle(x, y int, p particle.Particle) int {
	i, ok := g.index(x, y)
	if !ok {
		return -1
	}
	g.cells[i] = p
	return i
}

func (g *fakeGrid) Width() int          { return g.w }
func (g *fakeGrid) Height() int         { return g.h }
func (g *fakeGrid) Generation() uint8   { return g.generation }
func (g *fakeGrid) MarkDirty(index int) { g.dirty = append(g.dirty, index) }
func (g *fakeGrid) Rand() *rand.Rand    { return g.rng }

func (g *fakeGrid) Temperature(x, y int) float64 { return g.env.Get(x, y).AmbientTemperature }
func (g *fakeGrid) SetTemperature(x, y int, t float64) {
	c := g.env.Get(x, y)
	c.AmbientTemperature = t
	g.env.Set(x, y, c)
}
func (g *fakeGrid) Pressure(x, y int) float64 { return g.env.Get(x, y).Pressure }
func (g *fakeGrid) SetPressure(x, y int, p float64) {
	c := g.env.Get(x, y)
	c.Pressure = p
	g.env.Set(x, y, c)
}

var golNeighbourOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func (g *fakeGrid) LiveNeighbours(x, y int) int {
	count := 0
	for _, off := range golNeighbourOffsets {
		p, ok := g.Particle(x+off[0], y+off[1])
		if ok && p.Variant() == material.GameOfLife {
			count++
		}
	}
	return count
}

func (g *fakeGrid) set(x, y int, v material.Variant) {
	g.WriteParticle(x, y, particle.New(v))
}
func (g *fakeGrid) variantAt(x, y int) material.Variant {
	p, _ := g.Particle(x, y)
	return p.Variant()
}

func TestSandFallsThroughEmpty(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(1, 0, material.Sand)
	cell := cellapi.New(g, 1, 0)
	self, _ := g.Particle(1, 0)

	nx, ny := ApplyMovement(cell, self, DefaultConstants())

	if nx != 1 || ny != 1 {
		t.Fatalf("sand moved to (%d,%d), want (1,1)", nx, ny)
	}
	if g.variantAt(1, 1) != material.Sand {
		t.Error("sand should have fallen to (1,1)")
	}
	if g.variantAt(1, 0) != material.Empty {
		t.Error("origin should be empty after sand falls")
	}
}

func TestSandOnWaterDisplaces(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(1, 0, material.Sand)
	g.set(1, 1, material.Water)
	// Walls on both lower diagonals leave displacement as the only move.
	g.set(0, 1, material.Wall)
	g.set(2, 1, material.Wall)
	cell := cellapi.New(g, 1, 0)
	self, _ := g.Particle(1, 0)

	ApplyMovement(cell, self, DefaultConstants())

	if g.variantAt(1, 1) != material.Sand {
		t.Error("sand should displace water below it")
	}
	if g.variantAt(1, 0) != material.Water {
		t.Error("displaced water should surface where sand was")
	}
}

func TestFireDissolvesToSmokeEventually(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(1, 1, material.Fire)
	cell := cellapi.New(g, 1, 1)

	converted := false
	for i := 0; i < 2000; i++ {
		self, _ := g.Particle(1, 1)
		if self.Variant() != material.Fire {
			converted = true
			break
		}
		Update(cell, self, DefaultConstants())
	}
	if !converted {
		t.Fatal("fire never dissolved into smoke")
	}
	if g.variantAt(1, 1) != material.Smoke {
		t.Errorf("variant = %v, want Smoke", g.variantAt(1, 1))
	}
}

func TestWaterDissolvesSaltIntoSaltWater(t *testing.T) {
	g := newFakeGrid(1, 3)
	g.set(0, 0, material.Water)
	g.set(0, 1, material.Salt)
	cell := cellapi.New(g, 0, 0)

	for i := 0; i < 10; i++ {
		self, _ := g.Particle(0, 0)
		if self.Variant() != material.Water {
			break
		}
		Update(cell, self, DefaultConstants())
	}

	if g.variantAt(0, 0) != material.SaltWater {
		t.Errorf("(0,0) = %v, want SaltWater after dissolve+swap", g.variantAt(0, 0))
	}
	if g.variantAt(0, 1) != material.Water {
		t.Errorf("(0,1) = %v, want Water after dissolve+swap", g.variantAt(0, 1))
	}
}

func TestGameOfLifeBirthOnThreeNeighbours(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(0, 1, material.GameOfLife)
	g.set(1, 1, material.GameOfLife)
	g.set(2, 1, material.GameOfLife)
	cell := cellapi.New(g, 1, 0)
	self, _ := g.Particle(1, 0)

	modified := Update(cell, self, DefaultConstants())

	if !modified {
		t.Fatal("empty cell with 3 live neighbours should be modified")
	}
	if g.variantAt(1, 0) != material.GameOfLife {
		t.Errorf("variant = %v, want GameOfLife (birth)", g.variantAt(1, 0))
	}
}

func TestGameOfLifeSurvivesOnTwoOrThreeNeighbours(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(1, 0, material.GameOfLife)
	g.set(0, 1, material.GameOfLife)
	g.set(1, 1, material.GameOfLife)
	cell := cellapi.New(g, 1, 1)
	self, _ := g.Particle(1, 1)

	modified := Update(cell, self, DefaultConstants())

	if modified {
		t.Error("live cell with 2 live neighbours should survive unmodified")
	}
}

func TestGameOfLifeDiesOnUnderOrOverPopulation(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(1, 1, material.GameOfLife)
	cell := cellapi.New(g, 1, 1)
	self, _ := g.Particle(1, 1)

	modified := Update(cell, self, DefaultConstants())

	if !modified {
		t.Fatal("lone live cell should die")
	}
	if g.variantAt(1, 1) != material.Empty {
		t.Errorf("variant = %v, want Empty after death", g.variantAt(1, 1))
	}

	g = newFakeGrid(3, 3)
	g.set(1, 1, material.GameOfLife)
	for _, c := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}} {
		g.set(c[0], c[1], material.GameOfLife)
	}
	cell = cellapi.New(g, 1, 1)
	self, _ = g.Particle(1, 1)

	if !Update(cell, self, DefaultConstants()) {
		t.Fatal("live cell with 4 live neighbours should die")
	}
	if g.variantAt(1, 1) != material.Empty {
		t.Errorf("variant = %v, want Empty after overpopulation", g.variantAt(1, 1))
	}
}

func TestWallAndGlassAreInert(t *testing.T) {
	g := newFakeGrid(3, 3)
	g.set(1, 1, material.Wall)
	cell := cellapi.New(g, 1, 1)
	self, _ := g.Particle(1, 1)
	if Update(cell, self, DefaultConstants()) {
		t.Error("Wall should never report modified")
	}

	g.set(1, 1, material.Glass)
	self, _ = g.Particle(1, 1)
	if Update(cell, self, DefaultConstants()) {
		t.Error("Glass should never report modified")
	}
}
