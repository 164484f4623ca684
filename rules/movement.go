// Package rules implements the generic property-driven movement kernel
// and the per-variant reaction rules that run after it.
package rules

import (
	"github.com/pthm-cable/cellsim/cellapi"
	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
)

// ApplyMovement runs the generic, property-keyed default motion for
// self (rooted at cell's cursor) and reports the coordinates self
// occupies afterward — unchanged if it didn't move. IMMUTABLE variants
// and Solid-property variants never move here. rc.RaRerollOdds
// parameterizes moveLiquid's flow-bias reroll cadence.
func ApplyMovement(cell *cellapi.Cell, self particle.Particle, rc Constants) (int, int) {
	typ := self.VariantType
	if typ == nil || typ.HasFlag(material.Immutable) {
		return cell.X(), cell.Y()
	}
	switch typ.Property {
	case material.PropertyPowder:
		return movePowder(cell, self)
	case material.PropertyLiquid:
		return moveLiquid(cell, self, rc)
	case material.PropertyGas:
		return moveGas(cell, self)
	default:
		return cell.X(), cell.Y()
	}
}

func weighsLess(a, b *material.Type) bool {
	return b.Weight < a.Weight
}

// movePowder implements spec §4.5's Powder motion: fall straight, else
// slide diagonally, else displace a lighter liquid below, else remain.
func movePowder(cell *cellapi.Cell, self particle.Particle) (int, int) {
	dx := cell.RandDir()

	below := cell.Get(0, 1)
	if below.Variant() == material.Empty {
		cell.SwapWith(0, 1)
		return cell.X(), cell.Y() + 1
	}
	if dx != 0 {
		diag := cell.Get(dx, 1)
		if diag.Variant() == material.Empty {
			cell.SwapWith(dx, 1)
			return cell.X() + dx, cell.Y() + 1
		}
	}
	if below.VariantType.Property == material.PropertyLiquid {
		cell.SwapWith(0, 1)
		return cell.X(), cell.Y() + 1
	}
	return cell.X(), cell.Y()
}

// moveGas mirrors movePowder, trying (dx,-1) instead of (dx,+1).
func moveGas(cell *cellapi.Cell, self particle.Particle) (int, int) {
	dx := cell.RandDir()

	above := cell.Get(0, -1)
	if above.Variant() == material.Empty {
		cell.SwapWith(0, -1)
		return cell.X(), cell.Y() - 1
	}
	if dx != 0 {
		diag := cell.Get(dx, -1)
		if diag.Variant() == material.Empty {
			cell.SwapWith(dx, -1)
			return cell.X() + dx, cell.Y() - 1
		}
	}
	if above.VariantType.Property == material.PropertyLiquid {
		cell.SwapWith(0, -1)
		return cell.X(), cell.Y() - 1
	}
	return cell.X(), cell.Y()
}

// raBiasSign reads the direction-parity bias encoded in the low bit of
// ra: even prefers left, odd prefers right.
func raBiasSign(ra uint8) int {
	if ra%2 == 0 {
		return -1
	}
	return 1
}

// moveLiquid implements spec §4.5's multi-stage Liquid flow. Position
// changes and scratch-byte mutations (ra bias, rb certainty) are
// committed together via commitMove/commitInPlace so a move never
// leaves stale Ra/Rb behind.
func moveLiquid(cell *cellapi.Cell, self particle.Particle, rc Constants) (int, int) {
	below := cell.Get(0, 1)

	if below.Variant() == material.Empty {
		if cell.OnceIn(rc.RaRerollOdds) {
			self.Ra = nextRaBias(cell, self.Ra)
		}
		commitMove(cell, 0, 1, self)
		return cell.X(), cell.Y() + 1
	}
	if weighsLess(self.VariantType, below.VariantType) {
		commitMove(cell, 0, 1, self)
		return cell.X(), cell.Y() + 1
	}

	dx := raBiasSign(self.Ra)
	diagA := cell.Get(dx, 1)
	if diagA.Variant() == material.Empty {
		commitMove(cell, dx, 1, self)
		return cell.X() + dx, cell.Y() + 1
	}
	diagB := cell.Get(-dx, 1)
	if diagB.Variant() == material.Empty {
		commitMove(cell, -dx, 1, self)
		return cell.X() - dx, cell.Y() + 1
	}

	side := raBiasSign(self.Ra)
	c1 := cell.Get(side, 0)
	c2 := cell.Get(side*2, 0)
	if c1.Variant() == material.Empty && c2.Variant() == material.Empty {
		self.Rb = 6
		propagateBias(cell, self, side)
		commitMove(cell, side*2, 0, self)
		return cell.X() + side*2, cell.Y()
	}
	if c1.Variant() == material.Empty {
		self.Rb = 3
		propagateBias(cell, self, side)
		commitMove(cell, side, 0, self)
		return cell.X() + side, cell.Y()
	}

	if self.Rb == 0 {
		opposite := cell.Get(-side, 0)
		if opposite.Variant() == material.Empty {
			self.Ra = self.Ra + uint8(int8(-side))
		}
	} else {
		self.Rb--
	}
	commitInPlace(cell, self)
	return cell.X(), cell.Y()
}

// nextRaBias rerolls the flow bias (ra's low bit, see raBiasSign) to
// left or right with equal odds using cell's RNG, keeping the rest of
// ra's grain value.
func nextRaBias(cell *cellapi.Cell, current uint8) uint8 {
	if cell.OnceIn(2) {
		return current | 1
	}
	return current &^ 1
}

// propagateBias spreads this particle's ra parity to a same-variant
// neighbour chosen from a (0,0)-biased random vector, so two bodies of
// the same liquid converge on a shared flow direction over time.
func propagateBias(cell *cellapi.Cell, self particle.Particle, side int) {
	dx, dy := cell.RandVec()
	if dx == 0 && dy == 0 {
		return
	}
	nb := cell.Get(dx, dy)
	if nb.Variant() != self.Variant() {
		return
	}
	nb.Ra = self.Ra
	cell.Set(dx, dy, nb)
}

// commitMove writes self (with any scratch-byte mutations already
// applied) into (dx,dy), leaving whatever occupied that cell behind at
// the cursor's own position — a swap that lets the mover's payload be
// customized instead of copied verbatim from the grid.
func commitMove(cell *cellapi.Cell, dx, dy int, self particle.Particle) {
	displaced := cell.Get(dx, dy)
	self.Modified = true
	displaced.Modified = true
	cell.Set(0, 0, displaced)
	cell.Set(dx, dy, self)
}

// commitInPlace persists scratch-byte-only mutations without moving.
func commitInPlace(cell *cellapi.Cell, self particle.Particle) {
	cell.Set(0, 0, self)
}
