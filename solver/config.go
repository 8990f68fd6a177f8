package solver

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StringRemovalConfig tunes the adjusted string removal ruin.
type StringRemovalConfig struct {
	LsMax       int     `yaml:"lsmax"`       // max cardinality of any removed string
	KsMax       int     `yaml:"ksmax"`       // max number of removed strings
	Probability float64 `yaml:"probability"` // per-iteration application probability
}

// RouteRemovalConfig tunes the random route removal ruin.
type RouteRemovalConfig struct {
	MaxRoutes   int     `yaml:"max_routes"`
	Probability float64 `yaml:"probability"`
}

// RuinConfig groups the ruin strategy parameters.
type RuinConfig struct {
	StringRemoval StringRemovalConfig `yaml:"string_removal"`
	RouteRemoval  RouteRemovalConfig  `yaml:"route_removal"`
}

// SolverConfig is the full tuning surface of one search. NewSolver
// replaces a missing budget (no iterations and no time limit) and a
// ruin section with a size cap below one by the defaults of
// DefaultSolverConfig; other zero values are used as given (LogEvery 0
// disables progress logging).
type SolverConfig struct {
	Seed              int64      `yaml:"seed"`
	Iterations        int        `yaml:"iterations"`
	MaxTimeSeconds    float64    `yaml:"max_time_seconds"`
	UnassignedPenalty float64    `yaml:"unassigned_penalty"`
	LogEvery          int        `yaml:"log_every"`
	Ruin              RuinConfig `yaml:"ruin"`
}

// DefaultSolverConfig returns the tuning the benchmarks run with.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Seed:              0,
		Iterations:        2000,
		UnassignedPenalty: DefaultUnassignedPenalty,
		LogEvery:          100,
		Ruin: RuinConfig{
			StringRemoval: StringRemovalConfig{LsMax: 10, KsMax: 5, Probability: 1.0},
			RouteRemoval:  RouteRemovalConfig{MaxRoutes: 1, Probability: 0.01},
		},
	}
}

// LoadSolverConfig reads a yaml config file. Unknown fields are errors
// so typos surface instead of silently running defaults.
func LoadSolverConfig(path string) (SolverConfig, error) {
	cfg := DefaultSolverConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading solver config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing solver config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the search cannot run with.
func (c SolverConfig) Validate() error {
	if c.Iterations <= 0 && c.MaxTimeSeconds <= 0 {
		return fmt.Errorf("either iterations or max_time_seconds must be positive")
	}
	if c.MaxTimeSeconds < 0 {
		return fmt.Errorf("max_time_seconds must be non-negative, got %f", c.MaxTimeSeconds)
	}
	if c.UnassignedPenalty < 0 {
		return fmt.Errorf("unassigned_penalty must be non-negative, got %f", c.UnassignedPenalty)
	}
	if c.Ruin.StringRemoval.LsMax < 1 {
		return fmt.Errorf("ruin.string_removal.lsmax must be at least 1, got %d", c.Ruin.StringRemoval.LsMax)
	}
	if c.Ruin.StringRemoval.KsMax < 1 {
		return fmt.Errorf("ruin.string_removal.ksmax must be at least 1, got %d", c.Ruin.StringRemoval.KsMax)
	}
	if c.Ruin.RouteRemoval.MaxRoutes < 1 {
		return fmt.Errorf("ruin.route_removal.max_routes must be at least 1, got %d", c.Ruin.RouteRemoval.MaxRoutes)
	}
	if p := c.Ruin.StringRemoval.Probability; p < 0 || p > 1 {
		return fmt.Errorf("ruin.string_removal.probability must lie in [0, 1], got %f", p)
	}
	if p := c.Ruin.RouteRemoval.Probability; p < 0 || p > 1 {
		return fmt.Errorf("ruin.route_removal.probability must lie in [0, 1], got %f", p)
	}
	return nil
}
