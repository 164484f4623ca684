// Package world owns the particle grid and environment field and runs
// the per-generation sweep described by the simulation core: the
// scheduler that the Cell API and rule dispatch table serve.
package world

import (
	"math/rand"

	"github.com/pthm-cable/cellsim/cellapi"
	"github.com/pthm-cable/cellsim/config"
	"github.com/pthm-cable/cellsim/environment"
	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
	"github.com/pthm-cable/cellsim/rules"
	"github.com/pthm-cable/cellsim/snapshot"
	"github.com/pthm-cable/cellsim/telemetry"
)

// neighbourOffsets8 is the Moore neighbourhood used for temperature
// exchange during the sweep.
var neighbourOffsets8 = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// World owns the grid and environment and advances them one
// generation at a time. It implements cellapi.Grid so rule functions
// can be handed a narrow, bounded view without World exposing its
// internals directly.
type World struct {
	width, height int
	particles     []particle.Particle
	env           *environment.Field

	generation  uint8
	running     bool
	cleared     bool
	modified    []int
	golSnapshot []bool

	rng *rand.Rand

	relaxRate        float64
	exchangeFraction float64
	constants        rules.Constants

	perf *telemetry.PerfCollector
}

// New constructs a world of the given dimensions, seeded from a
// process-derived source. Every cell starts Empty; the environment
// starts with a simplex-noise temperature texture around ambient.
func New(width, height int) *World {
	return NewSeeded(width, height, rand.Int63())
}

// NewSeeded is New with an explicit seed, for reproducible runs and
// tests (spec.md's Design Notes leave determinism as an implementer's
// choice — this surfaces it as a constructor parameter).
func NewSeeded(width, height int, seed int64) *World {
	cfg := config.CfgOrDefaults()
	particles := make([]particle.Particle, width*height)
	for i := range particles {
		particles[i] = particle.New(material.Empty)
	}
	return &World{
		width:            width,
		height:           height,
		particles:        particles,
		env:              environment.New(width, height, seed),
		running:          true,
		golSnapshot:      make([]bool, width*height),
		rng:              rand.New(rand.NewSource(seed)),
		relaxRate:        cfg.Thermal.RelaxRate,
		exchangeFraction: cfg.Thermal.ExchangeFraction,
		constants:        constantsFromConfig(cfg),
	}
}

// constantsFromConfig converts config.Cfg()'s Reactions/Flow sections
// into a rules.Constants, the plain-data form rule functions actually
// consume.
func constantsFromConfig(cfg *config.Config) rules.Constants {
	return rules.Constants{
		SandMeltTemperature:      cfg.Reactions.SandMeltTemperature,
		WaterBoilTemperature:     cfg.Reactions.WaterBoilTemperature,
		SaltWaterSeparateTemp:    cfg.Reactions.SaltWaterSeparateTemp,
		FireForcingTemperature:   cfg.Reactions.FireForcingTemperature,
		FireToSmokeOdds:          cfg.Reactions.FireToSmokeOdds,
		SmokeToEmptyOdds:         cfg.Reactions.SmokeToEmptyOdds,
		DecayingGasOdds:          cfg.Reactions.DecayingGasOdds,
		OxygenCombustTemperature: cfg.Reactions.OxygenCombustTemperature,
		GameOfLifeKillTemp:       cfg.Reactions.GameOfLifeKillTemperature,
		RaRerollOdds:             cfg.Flow.RaRerollOdds,
	}
}

// SetPerfCollector attaches a PerfCollector whose StartPhase is called
// at stepCell's relax/movement/reaction boundaries. Passing nil
// disables phase timing (the default).
func (w *World) SetPerfCollector(p *telemetry.PerfCollector) {
	w.perf = p
}

// NewWithThermal is NewSeeded with the relax rate and neighbour
// exchange fraction overridden directly, bypassing the global config —
// for cmd/tune, which evaluates many candidate values per run and
// cannot go through config.Init's one-shot global each time.
func NewWithThermal(width, height int, seed int64, relaxRate, exchangeFraction float64) *World {
	w := NewSeeded(width, height, seed)
	w.relaxRate = relaxRate
	w.exchangeFraction = exchangeFraction
	return w
}

func (w *World) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= w.width || y >= w.height {
		return 0, false
	}
	return y*w.width + x, true
}

// --- cellapi.Grid ---

func (w *World) Particle(x, y int) (particle.Particle, bool) {
	i, ok := w.index(x, y)
	if !ok {
		return particle.Particle{}, false
	}
	return w.particles[i], true
}

func (w *World) WriteParticle(x, y int, p particle.Particle) int {
	i, ok := w.index(x, y)
	if !ok {
		return -1
	}
	w.particles[i] = p
	return i
}

func (w *World) Width() int        { return w.width }
func (w *World) Height() int       { return w.height }
func (w *World) Generation() uint8 { return w.generation }
func (w *World) Rand() *rand.Rand  { return w.rng }

// SetGeneration overwrites the generation counter; used by snapshot
// restore to reproduce the exact sweep-direction parity of the saved
// world.
func (w *World) SetGeneration(g uint8) { w.generation = g }

func (w *World) MarkDirty(index int) {
	w.modified = append(w.modified, index)
}

// LiveNeighbours reports how many of (x,y)'s 8 Moore neighbours were
// GameOfLife in golSnapshot, the alive-cell bitmap frozen at the start
// of the current tick.
func (w *World) LiveNeighbours(x, y int) int {
	count := 0
	for _, off := range neighbourOffsets8 {
		i, ok := w.index(x+off[0], y+off[1])
		if ok && w.golSnapshot[i] {
			count++
		}
	}
	return count
}

func (w *World) Temperature(x, y int) float64 {
	return w.env.Get(x, y).AmbientTemperature
}

func (w *World) SetTemperature(x, y int, t float64) {
	c := w.env.Get(x, y)
	c.AmbientTemperature = t
	w.env.Set(x, y, c)
}

func (w *World) Pressure(x, y int) float64 {
	return w.env.Get(x, y).Pressure
}

func (w *World) SetPressure(x, y int, p float64) {
	c := w.env.Get(x, y)
	c.Pressure = p
	w.env.Set(x, y, c)
}

// --- host-facing facade ---

// SetParticle overwrites the cell at (x,y) with a freshly constructed
// particle of the given variant. Out-of-grid coordinates are a no-op.
func (w *World) SetParticle(x, y int, v material.Variant) {
	i, ok := w.index(x, y)
	if !ok {
		return
	}
	w.particles[i] = particle.New(v)
	w.modified = append(w.modified, i)
}

// GetParticle returns the particle at (x,y), or Empty if out of grid.
func (w *World) GetParticle(x, y int) particle.Particle {
	i, ok := w.index(x, y)
	if !ok {
		return particle.New(material.Empty)
	}
	return w.particles[i]
}

// AddHeat adds heat to the particle at (x,y), clamped per particle.AddHeat.
func (w *World) AddHeat(x, y int, h float64) {
	i, ok := w.index(x, y)
	if !ok {
		return
	}
	p := w.particles[i]
	p.AddHeat(h)
	w.particles[i] = p
}

// EraseIndestructible forcibly clears an IMMUTABLE-flagged cell (e.g.
// Wall) to Empty; a no-op on any other variant or out-of-grid cell.
func (w *World) EraseIndestructible(x, y int) {
	i, ok := w.index(x, y)
	if !ok {
		return
	}
	p := w.particles[i]
	if p.VariantType == nil || !p.VariantType.HasFlag(material.Immutable) {
		return
	}
	w.particles[i] = particle.New(material.Empty)
	w.modified = append(w.modified, i)
}

// GetParticleCount reports the number of non-Empty, non-Wall cells.
func (w *World) GetParticleCount() int {
	count := 0
	for _, p := range w.particles {
		v := p.Variant()
		if v != material.Empty && v != material.Wall {
			count++
		}
	}
	return count
}

// VariantCounts returns the number of cells currently holding each
// variant, for telemetry.BuildGenerationStats.
func (w *World) VariantCounts() map[material.Variant]int {
	counts := make(map[material.Variant]int, len(material.All()))
	for _, p := range w.particles {
		counts[p.Variant()]++
	}
	return counts
}

// MeanTemperature returns the average environment temperature over
// every grid cell, for telemetry.BuildGenerationStats.
func (w *World) MeanTemperature() float64 {
	var sum float64
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			sum += w.Temperature(x, y)
		}
	}
	return sum / float64(w.width*w.height)
}

// Reset clears every cell to Empty and the environment to its
// construction-time default. needs_update is guaranteed true for at
// least the tick following a Reset.
func (w *World) Reset() {
	for i := range w.particles {
		w.particles[i] = particle.New(material.Empty)
	}
	w.env.Reset()
	w.cleared = true
}

// Pause and Resume toggle whether Tick does anything.
func (w *World) Pause()  { w.running = false }
func (w *World) Resume() { w.running = true }

// Running reports whether the world currently advances on Tick.
func (w *World) Running() bool { return w.running }

// NeedsUpdate reports whether the renderer has anything new to draw:
// either this tick changed cells, or the world was just Reset.
func (w *World) NeedsUpdate() bool {
	return w.cleared || len(w.modified) > 0
}

// ModifiedIndices returns the flat indices that changed during the
// most recent Tick, valid until the next Tick call clears them.
func (w *World) ModifiedIndices() []int {
	return w.modified
}

// Tick advances the simulation by one generation. A no-op if the world
// is paused. See spec.md §4.7 for the exact sweep and double-update
// avoidance rules this implements.
func (w *World) Tick() {
	w.cleared = false
	if !w.running {
		return
	}
	w.modified = w.modified[:0]

	for i := range w.particles {
		w.particles[i].Modified = false
		w.golSnapshot[i] = w.particles[i].Variant() == material.GameOfLife
	}

	evenGeneration := w.generation%2 == 0
	for xi := w.width - 1; xi >= 0; xi-- {
		x := xi
		if evenGeneration {
			x = w.width - 1 - xi
		}
		for y := w.height - 1; y >= 0; y-- {
			w.stepCell(x, y)
		}
	}

	w.generation++
}

func (w *World) stepCell(x, y int) {
	idx, _ := w.index(x, y)
	p := w.particles[idx]

	if p.Clock > w.generation || p.Modified {
		w.modified = append(w.modified, idx)
		return
	}

	if w.perf != nil {
		w.perf.StartPhase(telemetry.PhaseRelax)
	}
	w.relaxTemperature(x, y)

	if w.perf != nil {
		w.perf.StartPhase(telemetry.PhaseMovement)
	}
	cell := cellapi.New(w, x, y)
	nx, ny := rules.ApplyMovement(cell, p, w.constants)

	current, ok := w.Particle(nx, ny)
	if !ok {
		return
	}
	movedCell := cellapi.New(w, nx, ny)
	if w.perf != nil {
		w.perf.StartPhase(telemetry.PhaseReaction)
	}
	if rules.Update(movedCell, current, w.constants) {
		nidx, _ := w.index(nx, ny)
		cp := w.particles[nidx]
		cp.Modified = true
		w.particles[nidx] = cp
		w.modified = append(w.modified, nidx)
	}
}

// relaxTemperature moves (x,y)'s temperature toward its particle's
// base temperature, then exchanges a fraction with each Moore
// neighbour. An unmotivated-constant simplification per spec.md's
// Design Notes — relax-only is an accepted simpler alternative, but
// exchanging with neighbours gives visibly smoother heat spread for
// Fire/Water scenarios.
func (w *World) relaxTemperature(x, y int) {
	idx, _ := w.index(x, y)
	p := w.particles[idx]
	if p.VariantType == nil {
		return
	}

	p.Temperature += (p.VariantType.BaseTemperature - p.Temperature) * w.relaxRate
	w.particles[idx] = p

	for _, off := range neighbourOffsets8 {
		nidx, ok := w.index(x+off[0], y+off[1])
		if !ok {
			continue
		}
		np := w.particles[nidx]
		exchange := (p.Temperature - np.Temperature) * w.exchangeFraction / float64(len(neighbourOffsets8))
		np.Temperature += exchange
		p.Temperature -= exchange
		w.particles[nidx] = np
	}
	w.particles[idx] = p
}

// Save writes a lossy RGB PNG snapshot to path.
func (w *World) Save(path string) error {
	return snapshot.Save(w, path)
}

// Load reconstructs the grid from a PNG snapshot, nearest-colour
// matched back to catalogue variants. World state is untouched if this
// returns an error.
func (w *World) Load(path string) error {
	tmp := make([]particle.Particle, len(w.particles))
	staging := &stagingSink{width: w.width, height: w.height, particles: tmp}
	if err := snapshot.Load(staging, path); err != nil {
		return err
	}
	w.particles = staging.particles
	w.cleared = true
	return nil
}

// SaveToSLC writes a compressed, exact binary snapshot to path.
func (w *World) SaveToSLC(path string) error {
	return snapshot.SaveToSLC(w, path)
}

// LoadFromSLC reverses SaveToSLC. World state is untouched if this
// returns an error.
func (w *World) LoadFromSLC(path string) error {
	tmp := make([]particle.Particle, len(w.particles))
	staging := &stagingSink{width: w.width, height: w.height, particles: tmp}
	if err := snapshot.LoadFromSLC(staging, path); err != nil {
		return err
	}
	w.particles = staging.particles
	w.generation = staging.generation
	w.cleared = true
	return nil
}

// stagingSink implements snapshot.Sink over a scratch buffer so a
// failed load never mutates the live world (spec.md §7).
type stagingSink struct {
	width, height int
	particles     []particle.Particle
	generation    uint8
}

func (s *stagingSink) Width() int  { return s.width }
func (s *stagingSink) Height() int { return s.height }
func (s *stagingSink) SetGeneration(g uint8) { s.generation = g }
func (s *stagingSink) WriteParticle(x, y int, p particle.Particle) int {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return -1
	}
	i := y*s.width + x
	s.particles[i] = p
	return i
}
