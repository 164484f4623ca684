// Package telemetry reports per-generation world statistics: variant
// population counts, modified-set size, and mean temperature, logged
// structurally and written to CSV on the cadence config.Telemetry sets.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/cellsim/material"
)

// GenerationStats holds one generation's aggregated counts. Field order
// and csv tags are fixed by the static variant catalogue, so a slice of
// these marshals directly to a CSV row via gocsv.
type GenerationStats struct {
	Generation    int     `csv:"generation"`
	ModifiedCount int     `csv:"modified_count"`
	MeanTemp      float64 `csv:"mean_temperature"`

	EmptyCount      int `csv:"empty"`
	WallCount       int `csv:"wall"`
	SandCount       int `csv:"sand"`
	GlassCount      int `csv:"glass"`
	WaterCount      int `csv:"water"`
	FireCount       int `csv:"fire"`
	SmokeCount      int `csv:"smoke"`
	SaltCount       int `csv:"salt"`
	SaltWaterCount  int `csv:"saltwater"`
	OxygenCount     int `csv:"oxygen"`
	HydrogenCount   int `csv:"hydrogen"`
	HeliumCount     int `csv:"helium"`
	CarbonCount     int `csv:"carbon"`
	NitrogenCount   int `csv:"nitrogen"`
	IronCount       int `csv:"iron"`
	CO2Count        int `csv:"co2"`
	VapourCount     int `csv:"water_vapour"`
	GameOfLifeCount int `csv:"game_of_life"`
}

// BuildGenerationStats assembles a GenerationStats from the raw counts a
// caller gathers by walking the grid through World's host-facing API.
// It is a pure function, like the teacher's own ComputeEnergyStats, so
// it needs no access to the world package and stays a leaf dependency.
func BuildGenerationStats(generation, modifiedCount int, counts map[material.Variant]int, totalTemp float64, cellCount int) GenerationStats {
	var meanTemp float64
	if cellCount > 0 {
		meanTemp = totalTemp / float64(cellCount)
	}
	return GenerationStats{
		Generation:      generation,
		ModifiedCount:   modifiedCount,
		MeanTemp:        meanTemp,
		EmptyCount:      counts[material.Empty],
		WallCount:       counts[material.Wall],
		SandCount:       counts[material.Sand],
		GlassCount:      counts[material.Glass],
		WaterCount:      counts[material.Water],
		FireCount:       counts[material.Fire],
		SmokeCount:      counts[material.Smoke],
		SaltCount:       counts[material.Salt],
		SaltWaterCount:  counts[material.SaltWater],
		OxygenCount:     counts[material.Oxygen],
		HydrogenCount:   counts[material.Hydrogen],
		HeliumCount:     counts[material.Helium],
		CarbonCount:     counts[material.Carbon],
		NitrogenCount:   counts[material.Nitrogen],
		IronCount:       counts[material.Iron],
		CO2Count:        counts[material.CO2],
		VapourCount:     counts[material.WaterVapour],
		GameOfLifeCount: counts[material.GameOfLife],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("modified_count", s.ModifiedCount),
		slog.Float64("mean_temperature", s.MeanTemp),
		slog.Int("sand", s.SandCount),
		slog.Int("water", s.WaterCount),
		slog.Int("fire", s.FireCount),
		slog.Int("smoke", s.SmokeCount),
		slog.Int("game_of_life", s.GameOfLifeCount),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"modified_count", s.ModifiedCount,
		"mean_temperature", s.MeanTemp,
		"sand", s.SandCount,
		"water", s.WaterCount,
		"fire", s.FireCount,
		"smoke", s.SmokeCount,
		"game_of_life", s.GameOfLifeCount,
	)
}

