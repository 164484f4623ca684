// Command sandcli runs the simulation core headless: no window, no
// renderer, just a fixed number of generations against an optionally
// seeded or loaded world, with optional telemetry and a snapshot on
// exit.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/pthm-cable/cellsim/config"
	"github.com/pthm-cable/cellsim/telemetry"
	"github.com/pthm-cable/cellsim/world"
)

func main() {
	configPath := flag.String("config", "", "config YAML file (empty = embedded defaults)")
	ticks := flag.Int("ticks", 1000, "number of generations to run")
	width := flag.Int("width", 200, "grid width (must match the snapshot if -load is set)")
	height := flag.Int("height", 200, "grid height (must match the snapshot if -load is set)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = process-derived)")
	load := flag.String("load", "", "load a starting world from this .slc snapshot")
	save := flag.String("save", "", "save the final world to this .slc snapshot")
	outputDir := flag.String("output", "", "directory for telemetry.csv/perf.csv/config.yaml (empty = disabled)")
	logEvery := flag.Int("log-every", 0, "log generation stats every N ticks (0 = use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	cfg := config.Cfg()

	var w *world.World
	if *seed != 0 {
		w = world.NewSeeded(*width, *height, *seed)
	} else {
		w = world.New(*width, *height)
	}

	if *load != "" {
		if err := w.LoadFromSLC(*load); err != nil {
			log.Fatalf("loading snapshot %s: %v", *load, err)
		}
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		log.Printf("writing config.yaml: %v", err)
	}

	interval := *logEvery
	if interval == 0 {
		interval = cfg.Telemetry.LogEveryNTicks
	}
	sampler := telemetry.NewSampler(interval)
	perf := telemetry.NewPerfCollector(0)
	w.SetPerfCollector(perf)

	for gen := 0; gen < *ticks; gen++ {
		perf.StartTick()
		w.Tick()

		if sampler.Due(gen) {
			perf.StartPhase(telemetry.PhaseTelemetry)
			cellCount := *width * *height
			totalTemp := w.MeanTemperature() * float64(cellCount)
			stats := telemetry.BuildGenerationStats(gen, len(w.ModifiedIndices()), w.VariantCounts(), totalTemp, cellCount)
			stats.LogStats()
			if err := om.WriteTelemetry(stats); err != nil {
				slog.Warn("writing telemetry row", "error", err)
			}
		}
		perf.EndTick()
	}

	if om != nil {
		if err := om.WritePerf(perf.Stats(), int32(*ticks)); err != nil {
			slog.Warn("writing perf row", "error", err)
		}
	}

	if *save != "" {
		if err := w.SaveToSLC(*save); err != nil {
			log.Fatalf("saving snapshot %s: %v", *save, err)
		}
	}

	slog.Info("run complete", "ticks", *ticks, "live_particles", w.GetParticleCount())
}
