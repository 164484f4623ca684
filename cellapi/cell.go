// Package cellapi provides the bounded, cursor-relative view of the
// grid that rule functions receive for a single (x,y) during one call.
// A Cell never outlives the rule invocation it was built for and may
// only touch cells within two steps of its cursor.
package cellapi

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
)

// Grid is the narrow surface a World exposes to the Cell API. It is
// implemented by world.World; cellapi never imports world, which keeps
// the World <-> Cell API borrow a one-shot, per-call ownership
// transfer rather than a retained circular reference.
type Grid interface {
	Particle(x, y int) (particle.Particle, bool)
	WriteParticle(x, y int, p particle.Particle) int // returns flat index, or -1 if out of grid
	Width() int
	Height() int
	Generation() uint8
	MarkDirty(index int)
	Temperature(x, y int) float64
	SetTemperature(x, y int, t float64)
	Pressure(x, y int) float64
	SetPressure(x, y int, p float64)
	Rand() *rand.Rand

	// LiveNeighbours reports how many of (x,y)'s 8 Moore neighbours
	// were GameOfLife at the start of the current tick. It is read
	// from a frozen per-tick snapshot rather than the live, partially
	// mutated grid, so Game of Life's birth/death rule stays correct
	// regardless of sweep order.
	LiveNeighbours(x, y int) int
}

// neighbourOffsets is the fixed Moore-neighbourhood order returned by
// GetNeighbours: clockwise starting at North.
var neighbourOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// wallSentinel is returned for any coordinate outside the grid, so
// rules treat the border as an impassable solid.
func wallSentinel() particle.Particle {
	return particle.Particle{VariantType: material.Lookup(material.Wall)}
}

// Cell is the scoped view rooted at one (x,y) cursor.
type Cell struct {
	grid Grid
	x, y int
}

// New constructs a Cell API rooted at (x,y) on grid. Callers must not
// retain the returned Cell past the single rule invocation it serves.
func New(grid Grid, x, y int) *Cell {
	return &Cell{grid: grid, x: x, y: y}
}

func checkOffset(dx, dy int) {
	if dx < -2 || dx > 2 || dy < -2 || dy > 2 {
		panic(fmt.Sprintf("cellapi: offset (%d,%d) outside [-2,2]^2", dx, dy))
	}
}

// Get returns a copy of the particle at (x+dx, y+dy). dx and dy must
// lie in [-2,2]; violating this is a programmer error and panics.
// Coordinates outside the grid return a synthetic Wall particle.
func (c *Cell) Get(dx, dy int) particle.Particle {
	checkOffset(dx, dy)
	p, ok := c.grid.Particle(c.x+dx, c.y+dy)
	if !ok {
		return wallSentinel()
	}
	return p
}

// Set writes p into (x+dx, y+dy). Silently does nothing if the target
// is out of grid. The written cell's Clock is stamped to generation+1
// so this frame's sweep will not revisit it.
func (c *Cell) Set(dx, dy int, p particle.Particle) {
	checkOffset(dx, dy)
	p.Clock = c.grid.Generation() + 1
	idx := c.grid.WriteParticle(c.x+dx, c.y+dy, p)
	if idx >= 0 {
		c.grid.MarkDirty(idx)
	}
}

// SwapWith exchanges the cursor cell with (dx,dy). Both particles'
// Modified flags are set to true, marking them acted-upon for the
// remainder of this sweep. Returns false if either cell is out of
// grid, in which case nothing changes.
func (c *Cell) SwapWith(dx, dy int) bool {
	return c.SwapOffsets(0, 0, dx, dy)
}

// SwapOffsets exchanges two cursor-relative cells named by (dxA,dyA)
// and (dxB,dyB). Both offsets are independently bounds-checked.
func (c *Cell) SwapOffsets(dxA, dyA, dxB, dyB int) bool {
	checkOffset(dxA, dyA)
	checkOffset(dxB, dyB)
	ax, ay := c.x+dxA, c.y+dyA
	bx, by := c.x+dxB, c.y+dyB

	pa, okA := c.grid.Particle(ax, ay)
	pb, okB := c.grid.Particle(bx, by)
	if !okA || !okB {
		return false
	}

	pa.Modified = true
	pb.Modified = true

	idxA := c.grid.WriteParticle(ax, ay, pb)
	idxB := c.grid.WriteParticle(bx, by, pa)
	if idxA >= 0 {
		c.grid.MarkDirty(idxA)
	}
	if idxB >= 0 {
		c.grid.MarkDirty(idxB)
	}
	return true
}

// GetNeighbours returns the 8 Moore neighbours in clockwise order
// starting at North.
func (c *Cell) GetNeighbours() [8]particle.Particle {
	var out [8]particle.Particle
	for i, off := range neighbourOffsets {
		out[i] = c.Get(off[0], off[1])
	}
	return out
}

// LiveNeighbours reports how many of the cursor's 8 Moore neighbours
// were GameOfLife at the start of this tick (see Grid.LiveNeighbours).
func (c *Cell) LiveNeighbours() int {
	return c.grid.LiveNeighbours(c.x, c.y)
}

// RandDir returns -1, 0, or +1 with approximately uniform probability.
func (c *Cell) RandDir() int {
	return c.grid.Rand().Intn(3) - 1
}

// RandVec returns one of the 9 unit vectors (8 directions plus the
// zero vector) with approximately equal probability.
func (c *Cell) RandVec() (int, int) {
	n := c.grid.Rand().Intn(9)
	if n == 8 {
		return 0, 0
	}
	off := neighbourOffsets[n]
	return off[0], off[1]
}

// OnceIn reports true with probability 1/n. n must be >= 1.
func (c *Cell) OnceIn(n int) bool {
	if n <= 1 {
		return true
	}
	return c.grid.Rand().Intn(n) == 0
}

// OncePer is an alias of OnceIn kept for call-site clarity where rules
// read as "once per N ticks" rather than "one chance in N".
func (c *Cell) OncePer(n int) bool {
	return c.OnceIn(n)
}

// GetTemperature returns the environment temperature under the cursor.
func (c *Cell) GetTemperature() float64 {
	return c.grid.Temperature(c.x, c.y)
}

// SetTemperature forces the environment temperature under the cursor.
func (c *Cell) SetTemperature(t float64) {
	c.grid.SetTemperature(c.x, c.y, t)
}

// GetPressure returns the environment pressure under the cursor.
func (c *Cell) GetPressure() float64 {
	return c.grid.Pressure(c.x, c.y)
}

// SetPressure forces the environment pressure under the cursor.
func (c *Cell) SetPressure(p float64) {
	c.grid.SetPressure(c.x, c.y, p)
}

// X and Y report the cursor's absolute grid coordinates.
func (c *Cell) X() int { return c.x }
func (c *Cell) Y() int { return c.y }
