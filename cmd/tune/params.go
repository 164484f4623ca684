// Command tune searches spec.md's unmotivated free parameters
// (thermal diffusion rate, neighbour exchange fraction) against a
// target sand-fall time using gonum's Nelder-Mead optimizer, the same
// way the teacher's cmd/optimize fits ecology parameters against a
// survival-time fitness function.
package main

import (
	"github.com/pthm-cable/cellsim/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable thermal constants spec.md's
// Design Notes leave as free parameters. Fire's forcing temperature is
// config-driven too (config.Cfg().Reactions.FireForcingTemperature,
// threaded into rules.Constants by World), but the sand-fall scenario
// this command fits against never produces Fire, so it would have no
// gradient to optimize against here.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "relax_rate", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "exchange_fraction", Min: 0.0, Max: 0.5, Default: 0.05},
		},
	}
}

func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Thermal.RelaxRate = clamped[0]
	cfg.Thermal.ExchangeFraction = clamped[1]
}
