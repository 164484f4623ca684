// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Thermal   ThermalConfig   `yaml:"thermal"`
	Reactions ReactionsConfig `yaml:"reactions"`
	Flow      FlowConfig      `yaml:"flow"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorldConfig holds grid-level defaults.
type WorldConfig struct {
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`
}

// ThermalConfig holds the environment temperature diffusion rates
// spec.md's Design Notes leave as unmotivated free parameters.
type ThermalConfig struct {
	RelaxRate       float64 `yaml:"relax_rate"`
	ExchangeFraction float64 `yaml:"exchange_fraction"`
}

// ReactionsConfig holds the per-variant reaction thresholds and odds.
type ReactionsConfig struct {
	SandMeltTemperature       float64 `yaml:"sand_melt_temperature"`
	WaterBoilTemperature      float64 `yaml:"water_boil_temperature"`
	SaltWaterSeparateTemp     float64 `yaml:"saltwater_separate_temperature"`
	FireForcingTemperature    float64 `yaml:"fire_forcing_temperature"`
	FireToSmokeOdds           int     `yaml:"fire_to_smoke_odds"`
	SmokeToEmptyOdds          int     `yaml:"smoke_to_empty_odds"`
	DecayingGasOdds           int     `yaml:"decaying_gas_odds"`
	OxygenCombustTemperature  float64 `yaml:"oxygen_combust_temperature"`
	GameOfLifeKillTemperature float64 `yaml:"game_of_life_kill_temperature"`
}

// FlowConfig holds the liquid movement kernel's tunable odds.
type FlowConfig struct {
	RaRerollOdds int `yaml:"ra_reroll_odds"`
}

// TelemetryConfig holds per-generation stats logging parameters.
type TelemetryConfig struct {
	LogEveryNTicks int `yaml:"log_every_n_ticks"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// CfgOrDefaults returns the global configuration if Init was called,
// otherwise falls back to the embedded defaults without requiring
// callers (such as a freshly constructed World in a test) to perform
// process-wide setup first.
func CfgOrDefaults() *Config {
	if global != nil {
		return global
	}
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults failed to parse: %v", err))
	}
	return cfg
}

// WriteYAML serializes the configuration to path, so a run's effective
// settings (defaults plus any override file) can be archived alongside
// its telemetry output.
func WriteYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}
