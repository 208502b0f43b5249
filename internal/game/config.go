package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/otherside/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible maps and
	// fights. A seed of 0 means a random seed will be generated.
	Seed int64 `env:"OTHERSIDE_SEED"`

	// MinZones is the smallest map that may be closed.
	MinZones int `env:"OTHERSIDE_MIN_ZONES" envDefault:"15"`

	// MapCapacity bounds the number of zone pairs a map may hold.
	MapCapacity int `env:"OTHERSIDE_MAP_CAPACITY" envDefault:"1024"`

	// Plain forces the line console even on a terminal.
	Plain bool `env:"OTHERSIDE_PLAIN"`

	// Telemetry enables the OTLP trace exporter.
	Telemetry bool `env:"OTHERSIDE_TELEMETRY" envDefault:"true"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		MinZones:    world.DefaultMinimum,
		MapCapacity: world.DefaultCapacity,
		Telemetry:   true,
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the map bounds are usable.
func (c Config) Validate() error {
	if c.MinZones < 1 {
		return fmt.Errorf("min zones must be positive, got %d", c.MinZones)
	}
	if c.MapCapacity < c.MinZones {
		return fmt.Errorf("map capacity %d is below min zones %d", c.MapCapacity, c.MinZones)
	}
	return nil
}

func (c Config) graphOptions(w world.Weights) []world.Option {
	return []world.Option{
		world.WithMinimum(c.MinZones),
		world.WithCapacity(c.MapCapacity),
		world.WithWeights(w),
	}
}
