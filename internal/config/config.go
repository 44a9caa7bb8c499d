package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends for roll sets
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds process configuration read from the environment
type Config struct {
	// DataDir is where roll sets, simulations and preferences live
	DataDir string `env:"DICEGRAPH_DATA_DIR" envDefault:"dicegraph-data"`

	// Backend selects the roll-set store: "file" or "redis"
	Backend string `env:"DICEGRAPH_BACKEND" envDefault:"file"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"DICEGRAPH_LOG_LEVEL" envDefault:"info"`

	// SimulationWorkers is the number of simulator shards; 0 means one per CPU
	SimulationWorkers int `env:"DICEGRAPH_SIM_WORKERS" envDefault:"0"`

	// LargeSimulationRolls is the roll count from which a run needs confirmation
	LargeSimulationRolls int `env:"DICEGRAPH_LARGE_SIMULATION" envDefault:"1000000"`
}

// Load reads the optional .env files and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configured values
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.DataDir == "" {
		return errors.New("data dir cannot be empty")
	}
	if c.SimulationWorkers < 0 {
		return fmt.Errorf("simulation workers cannot be negative: %d", c.SimulationWorkers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// RollSetDir is the directory of hand-recorded roll sets
func (c *Config) RollSetDir() string {
	return filepath.Join(c.DataDir, "rolls")
}

// SimulationDir is the directory of saved simulation results
func (c *Config) SimulationDir() string {
	return filepath.Join(c.DataDir, "simulations")
}

// PreferencesPath is the location of the preferences file
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, "usersettings.dicegraphprefs")
}

// SlogLevel converts LogLevel to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
