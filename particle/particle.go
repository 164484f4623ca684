// Package particle defines the per-cell mutable record stored in every
// grid slot, independent of the grid that holds it.
package particle

import (
	"math/rand"

	"github.com/pthm-cable/cellsim/material"
)

// Vector2 is a 2D floating point vector. Velocity is reserved for a
// future ballistic-motion kernel; the movement kernel described here
// does not consume it.
type Vector2 struct {
	X, Y float32
}

// Particle is the per-cell value stored in a World's grid. Empty is a
// first-class Particle, not a null value: every grid slot always holds
// one.
type Particle struct {
	VariantType *material.Type
	Ra, Rb      uint8 // scratch bytes: seed grain, flow bias, GoL bit, dissolve counter
	Clock       uint8 // generation tag suppressing double-updates within a sweep
	Strength    uint8 // remaining dissolution budget
	Modified    bool  // set once this particle has acted in the current sweep
	Velocity    Vector2
	Temperature float64
}

// New constructs a Particle of the given variant. Ra is seeded as
// 100 + rand(0,1)*50, giving the two-valued {100,150} jitter the
// colouriser uses for grain variance — preserved verbatim even though
// it reads like it should be continuous.
func New(v material.Variant) Particle {
	typ := material.Lookup(v)
	ra := uint8(100)
	if rand.Intn(2) == 1 {
		ra = 150
	}
	return Particle{
		VariantType: typ,
		Ra:          ra,
		Rb:          0,
		Strength:    typ.Strength,
		Temperature: typ.BaseTemperature,
	}
}

// Variant returns the particle's material code.
func (p *Particle) Variant() material.Variant {
	if p.VariantType == nil {
		return material.Empty
	}
	return p.VariantType.Variant
}

// AddHeat adjusts temperature by h, clamped to the catalogue's global
// [MinTemperature, MaxTemperature] range.
func (p *Particle) AddHeat(h float64) {
	t := p.Temperature + h
	if t < material.MinTemperature {
		t = material.MinTemperature
	}
	if t > material.MaxTemperature {
		t = material.MaxTemperature
	}
	p.Temperature = t
}

// DissolveTo counts down Strength; once exhausted it mutates the
// particle's variant to target, refills Strength from target's base
// budget, and reports true. While the budget remains, it decrements
// and reports false — the particle survives this attack.
func (p *Particle) DissolveTo(target material.Variant) bool {
	if p.Strength > 0 {
		p.Strength--
		return false
	}
	typ := material.Lookup(target)
	p.VariantType = typ
	p.Strength = typ.Strength
	return true
}

// Reset overwrites p in place with a fresh Empty particle.
func (p *Particle) Reset() {
	*p = New(material.Empty)
}
