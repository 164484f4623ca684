package rules

import (
	"math"

	"github.com/pthm-cable/cellsim/cellapi"
	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
)

// Constants holds the per-variant reaction thresholds and odds that
// config.ReactionsConfig supplies. Rules stays free of a direct
// dependency on the config package (and its process-global Init
// order) by taking these as plain data instead — World converts
// config.Cfg().Reactions/Flow into a Constants once per construction
// and passes it to every Update/ApplyMovement call.
type Constants struct {
	SandMeltTemperature      float64
	WaterBoilTemperature     float64
	SaltWaterSeparateTemp    float64
	FireForcingTemperature   float64
	FireToSmokeOdds          int
	SmokeToEmptyOdds         int
	DecayingGasOdds          int
	OxygenCombustTemperature float64
	GameOfLifeKillTemp       float64
	RaRerollOdds             int
}

// DefaultConstants mirrors config/defaults.yaml's reactions section, for
// callers (tests, or any Grid built without a config.Config at hand)
// that don't need an override.
func DefaultConstants() Constants {
	return Constants{
		SandMeltTemperature:      1700.0,
		WaterBoilTemperature:     100.0,
		SaltWaterSeparateTemp:    102.0,
		FireForcingTemperature:   800.0,
		FireToSmokeOdds:          50,
		SmokeToEmptyOdds:         10,
		DecayingGasOdds:          10,
		OxygenCombustTemperature: 100.0,
		GameOfLifeKillTemp:       100.0,
		RaRerollOdds:             20,
	}
}

// Update dispatches self (already moved by ApplyMovement, rooted at
// cell's current cursor) to its variant's reaction rule. It reports
// whether self itself changed state; interactions that mutate a
// neighbour instead are already marked dirty by the Cell API's own
// Set/SwapWith calls and need no further reporting here.
func Update(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	switch self.Variant() {
	case material.Empty:
		return updateEmpty(cell, self)
	case material.Sand:
		return updateSand(cell, self, rc)
	case material.Salt:
		return updateSalt(cell, self)
	case material.Water:
		return updateWater(cell, self, rc)
	case material.SaltWater:
		return updateSaltWater(cell, self, rc)
	case material.Fire:
		return updateFire(cell, self, rc)
	case material.Smoke:
		return updateSmoke(cell, self, rc)
	case material.Oxygen:
		return updateOxygen(cell, self, rc)
	case material.Hydrogen, material.Helium, material.Carbon, material.Nitrogen, material.CO2:
		return updateDecayingGas(cell, self, rc)
	case material.WaterVapour:
		return updateWaterVapour(cell, self, rc)
	case material.GameOfLife:
		return updateGameOfLife(cell, self, rc)
	case material.Wall, material.Glass, material.Iron:
		return false
	default:
		return false
	}
}

func updateSand(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if self.Temperature <= rc.SandMeltTemperature {
		return false
	}
	self.VariantType = material.Lookup(material.Glass)
	cell.Set(0, 0, self)
	return true
}

// updateSalt implements the instant Salt->Water/SaltWater conversion:
// Water above and Empty below let the water sink past the salt,
// leaving Empty where the water was and SaltWater where the empty
// slot was, with the salt cell itself becoming Water.
func updateSalt(cell *cellapi.Cell, self particle.Particle) bool {
	above := cell.Get(0, -1)
	below := cell.Get(0, 1)
	if above.Variant() != material.Water || below.Variant() != material.Empty {
		return false
	}
	cell.Set(0, -1, particle.New(material.Empty))
	cell.Set(0, 1, particle.New(material.SaltWater))
	self.VariantType = material.Lookup(material.Water)
	cell.Set(0, 0, self)
	return true
}

// updateWater implements evaporation and the gradual dissolve of a
// Salt neighbour directly below into SaltWater, swapping positions
// once the neighbour's strength budget is exhausted.
func updateWater(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if self.Temperature > rc.WaterBoilTemperature {
		self.VariantType = material.Lookup(material.WaterVapour)
		cell.Set(0, 0, self)
		return true
	}
	below := cell.Get(0, 1)
	if below.Variant() != material.Salt {
		return false
	}
	neighbour := below
	converted := neighbour.DissolveTo(material.SaltWater)
	cell.Set(0, 1, neighbour)
	if !converted {
		return false
	}
	cell.SwapWith(0, 1)
	return true
}

// updateSaltWater separates back into WaterVapour and Salt when both
// the cell above and below are free; otherwise it collapses to plain
// Salt, since there is nowhere for the vapour half to go.
func updateSaltWater(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if self.Temperature <= rc.SaltWaterSeparateTemp {
		return false
	}
	above := cell.Get(0, -1)
	below := cell.Get(0, 1)
	if above.Variant() == material.Empty && below.Variant() == material.Empty {
		cell.Set(0, -1, particle.New(material.WaterVapour))
		cell.Set(0, 1, particle.New(material.Salt))
		cell.Set(0, 0, particle.New(material.Empty))
		return true
	}
	cell.Set(0, 0, particle.New(material.Salt))
	return true
}

func updateFire(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	cell.SetTemperature(rc.FireForcingTemperature)
	if !cell.OnceIn(rc.FireToSmokeOdds) {
		return false
	}
	self.DissolveTo(material.Smoke)
	cell.Set(0, 0, self)
	return true
}

func updateSmoke(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if !cell.OnceIn(rc.SmokeToEmptyOdds) {
		return false
	}
	self.DissolveTo(material.Empty)
	cell.Set(0, 0, self)
	return true
}

// updateOxygen combusts into Fire above its threshold temperature,
// else finds its coldest cardinal neighbour and, if that neighbour is
// Hydrogen, converts it to Water and swaps into its place.
func updateOxygen(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if self.Temperature > rc.OxygenCombustTemperature {
		self.VariantType = material.Lookup(material.Fire)
		cell.Set(0, 0, self)
		return true
	}

	offsets := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	coldestTemp := math.MaxFloat64
	var coldest particle.Particle
	var coldestOff [2]int
	for _, off := range offsets {
		p := cell.Get(off[0], off[1])
		if p.Temperature < coldestTemp {
			coldestTemp = p.Temperature
			coldest = p
			coldestOff = off
		}
	}
	if coldest.Variant() != material.Hydrogen {
		return false
	}
	converted := coldest.DissolveTo(material.Water)
	cell.Set(coldestOff[0], coldestOff[1], coldest)
	if !converted {
		return false
	}
	cell.SwapWith(coldestOff[0], coldestOff[1])
	return true
}

// updateDecayingGas is shared by the inert gases whose only rule is a
// flat 1-in-10 chance per tick of dissolving toward Empty.
func updateDecayingGas(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if !cell.OnceIn(rc.DecayingGasOdds) {
		return false
	}
	self.DissolveTo(material.Empty)
	cell.Set(0, 0, self)
	return true
}

func updateWaterVapour(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if self.Temperature <= 0 || self.Temperature >= rc.WaterBoilTemperature {
		return false
	}
	self.VariantType = material.Lookup(material.Water)
	cell.Set(0, 0, self)
	return true
}

// updateGameOfLife applies Conway's Game of Life survival rule on top
// of the grid's ordinary materials: a live cell above 100C dies into
// Sand instead of Empty, a nod to the grid's thermal rules still
// applying to "alive" cells. Neighbour counts come from a per-tick
// frozen snapshot (cell.LiveNeighbours), not the live grid, so the
// rule stays correct regardless of sweep order.
func updateGameOfLife(cell *cellapi.Cell, self particle.Particle, rc Constants) bool {
	if self.Temperature > rc.GameOfLifeKillTemp {
		self.VariantType = material.Lookup(material.Sand)
		cell.Set(0, 0, self)
		return true
	}
	n := cell.LiveNeighbours()
	if n == 2 || n == 3 {
		return false
	}
	cell.Set(0, 0, particle.New(material.Empty))
	return true
}

// updateEmpty checks the Game of Life birth condition: exactly three
// live neighbours spontaneously creates a new live cell here.
func updateEmpty(cell *cellapi.Cell, self particle.Particle) bool {
	if cell.LiveNeighbours() != 3 {
		return false
	}
	cell.Set(0, 0, particle.New(material.GameOfLife))
	return true
}
