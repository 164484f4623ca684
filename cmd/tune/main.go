package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/cellsim/config"
)

func main() {
	configPath := flag.String("config", "", "base config YAML file (empty = embedded defaults)")
	width := flag.Int("width", 40, "scenario grid width")
	height := flag.Int("height", 60, "scenario grid height")
	maxTicks := flag.Int("max-ticks", 2000, "tick cap per scenario run")
	target := flag.Float64("target-ticks", 80, "target sand-fall settle time, in ticks")
	seeds := flag.Int("seeds", 3, "seeds averaged per evaluation")
	maxEvals := flag.Int("max-evals", 80, "maximum optimizer evaluations")
	outputDir := flag.String("output", "", "directory to write the tuned config to (required)")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("-output is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 1)
	}

	evaluator := NewFitnessEvaluator(params, *width, *height, *maxTicks, *target, evalSeeds)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			return evaluator.Evaluate(raw)
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.NelderMead{}

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := params.Clamp(params.Denormalize(result.X))
	fmt.Println("Best parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, best[i])
	}

	params.ApplyToConfig(baseCfg, best)
	outPath := filepath.Join(*outputDir, "tuned_config.yaml")
	if err := config.WriteYAML(baseCfg, outPath); err != nil {
		log.Fatalf("writing tuned config: %v", err)
	}
	fmt.Printf("Tuned config saved to: %s\n", outPath)
}
