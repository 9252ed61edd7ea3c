package config

import (
	"io/fs"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/statesched/internal/core/states"
)

const (
	// EnvPath overrides DefaultPath when set.
	EnvPath     = "STATESCHED_CONFIG"
	DefaultPath = "configs/statesched.yaml"

	currentVersion = 1
)

type Config struct {
	Version    int              `yaml:"version"`
	Logging    LoggingConfig    `yaml:"logging"`
	Simulation SimulationConfig `yaml:"simulation"`
	Taxonomy   TaxonomyConfig   `yaml:"taxonomy"`
	Spawn      []SpawnConfig    `yaml:"spawn"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "json" or "console"
}

type SimulationConfig struct {
	TickRate time.Duration `yaml:"tick_rate"`
	Ticks    int           `yaml:"ticks"` // 0 runs until interrupted
	Workers  int           `yaml:"workers"`
	Parallel bool          `yaml:"parallel"`
}

// Step is the simulated time advanced per tick, in seconds.
func (s SimulationConfig) Step() float64 { return s.TickRate.Seconds() }

type TaxonomyConfig struct {
	Path string `yaml:"path"` // empty disables category lookup
}

// SpawnConfig describes one entity created at startup, by explicit abilities,
// by taxonomy category, or both (explicit abilities win).
type SpawnConfig struct {
	Name      string                   `yaml:"name"`
	Category  string                   `yaml:"category"`
	Abilities map[string]states.Params `yaml:"abilities"`
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load decodes path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Version != currentVersion {
		return errors.Errorf("unsupported config version: %d", c.Version)
	}
	if c.Simulation.TickRate <= 0 {
		return errors.Errorf("simulation.tick_rate must be positive, got %s", c.Simulation.TickRate)
	}
	if c.Simulation.Ticks < 0 {
		return errors.Errorf("simulation.ticks must not be negative, got %d", c.Simulation.Ticks)
	}
	if c.Simulation.Workers < 1 {
		return errors.Errorf("simulation.workers must be at least 1, got %d", c.Simulation.Workers)
	}
	seen := make(map[string]struct{}, len(c.Spawn))
	for i, s := range c.Spawn {
		if s.Name == "" {
			return errors.Errorf("spawn[%d]: name is required", i)
		}
		if _, dup := seen[s.Name]; dup {
			return errors.Errorf("spawn[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Version: currentVersion,
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Simulation: SimulationConfig{
			TickRate: 100 * time.Millisecond,
			Ticks:    50,
			Workers:  4,
			Parallel: true,
		},
	}
}
