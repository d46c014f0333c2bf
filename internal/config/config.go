// Package config loads planner defaults from a YAML file via viper,
// following the FromYaml pattern used elsewhere in the wider example
// corpus for one-off, stateless config loading.
package config

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// PlannerConfig holds the defaults a CLI or benchmark tool applies unless
// overridden by explicit flags.
type PlannerConfig struct {
	Strategy         string `mapstructure:"strategy"`          // "fixed_priority" | "windowed_v1" | "windowed_v2"
	Heuristic        string `mapstructure:"heuristic"`         // "manhattan" | "euclidean"
	PenaliseTurns    bool   `mapstructure:"penalise_turns"`
	WindowSize       int    `mapstructure:"window_size"`
	Reprioritisation string `mapstructure:"reprioritisation"`  // randomised | round_robin | shortest_abstract_path_first
	MaxTime          int    `mapstructure:"max_time"`
	Seed             int64  `mapstructure:"seed"`
}

// Default returns the built-in planner defaults, applied before any config
// file or flag overrides are layered on top.
func Default() PlannerConfig {
	return PlannerConfig{
		Strategy:         "fixed_priority",
		Heuristic:        "manhattan",
		PenaliseTurns:    true,
		WindowSize:       10,
		Reprioritisation: "round_robin",
		MaxTime:          200,
		Seed:             0,
	}
}

// Load reads a YAML planner config from path, layering its values over
// Default(). An empty path returns the defaults unchanged.
func Load(path string) (PlannerConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	vp.SetDefault("strategy", cfg.Strategy)
	vp.SetDefault("heuristic", cfg.Heuristic)
	vp.SetDefault("penalise_turns", cfg.PenaliseTurns)
	vp.SetDefault("window_size", cfg.WindowSize)
	vp.SetDefault("reprioritisation", cfg.Reprioritisation)
	vp.SetDefault("max_time", cfg.MaxTime)
	vp.SetDefault("seed", cfg.Seed)

	if err := vp.ReadInConfig(); err != nil {
		return cfg, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: decoding %s", path)
	}
	return cfg, nil
}
