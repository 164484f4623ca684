package main

import (
	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/world"
)

// FitnessEvaluator runs headless sand-fall scenarios and scores a
// candidate thermal parameter vector against a target settle time.
type FitnessEvaluator struct {
	params       *ParamVector
	width        int
	height       int
	maxTicks     int
	targetTicks  float64
	seeds        []int64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, width, height, maxTicks int, targetTicks float64, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		width:       width,
		height:      height,
		maxTicks:    maxTicks,
		targetTicks: targetTicks,
		seeds:       seeds,
	}
}

// Evaluate computes fitness for a parameter vector (lower = better):
// the squared error between the observed settle time, averaged over
// every seed, and the target.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	clamped := fe.params.Clamp(x)
	var total float64
	for _, seed := range fe.seeds {
		total += float64(fe.runSandFall(seed, clamped[0], clamped[1]))
	}
	avg := total / float64(len(fe.seeds))
	err := avg - fe.targetTicks
	return err * err
}

// runSandFall drops a column of sand through empty air onto a floor
// and reports how many ticks elapse before every grain stops moving.
func (fe *FitnessEvaluator) runSandFall(seed int64, relaxRate, exchangeFraction float64) int {
	w := world.NewWithThermal(fe.width, fe.height, seed, relaxRate, exchangeFraction)

	floorY := fe.height - 1
	for x := 0; x < fe.width; x++ {
		w.SetParticle(x, floorY, material.Wall)
	}
	midX := fe.width / 2
	w.SetParticle(midX, 0, material.Sand)

	for gen := 0; gen < fe.maxTicks; gen++ {
		w.Tick()
		if gen > 0 && len(w.ModifiedIndices()) == 0 {
			return gen
		}
	}
	return fe.maxTicks
}
