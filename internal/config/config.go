// Package config holds the generation options, their defaults, and the
// yaml config file loader. CLI flags override file values; the file
// overrides defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNumSteps       = 10
	DefaultNumTrain       = 50
	DefaultNumTest        = 10
	DefaultStride         = 1
	DefaultSeed           = 42
	DefaultResolution     = 32
	DefaultParticleRadius = 0.3
	DefaultOutDir         = "dataset"
)

// Config holds every knob of the generation pipeline. Field names track
// the original tool's option names: num_steps is the window length in
// timesteps and dt is the subsampling stride.
type Config struct {
	Out            string  `yaml:"out"`
	NumSteps       int     `yaml:"num_steps"`
	NumTrain       int     `yaml:"num_train"`
	NumTest        int     `yaml:"num_test"`
	Dt             int     `yaml:"dt"`
	Shuffle        bool    `yaml:"shuffle"`
	Seed           int64   `yaml:"seed"`
	Overwrite      bool    `yaml:"overwrite"`
	Resolution     int     `yaml:"resolution"`
	ParticleRadius float64 `yaml:"particle_radius"`
	Workers        int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Out:            DefaultOutDir,
		NumSteps:       DefaultNumSteps,
		NumTrain:       DefaultNumTrain,
		NumTest:        DefaultNumTest,
		Dt:             DefaultStride,
		Shuffle:        true,
		Seed:           DefaultSeed,
		Resolution:     DefaultResolution,
		ParticleRadius: DefaultParticleRadius,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects option values the pipeline cannot run with. It is
// called before any parsing or output so bad configs fail fast.
func (c *Config) Validate() error {
	if c.NumSteps < 1 {
		return fmt.Errorf("config: num_steps must be >= 1, got %d", c.NumSteps)
	}
	if c.Dt < 1 {
		return fmt.Errorf("config: dt must be >= 1, got %d", c.Dt)
	}
	if c.NumTrain < 0 || c.NumTest < 0 {
		return fmt.Errorf("config: num_train and num_test must be >= 0, got %d/%d", c.NumTrain, c.NumTest)
	}
	if c.NumTrain+c.NumTest < 1 {
		return fmt.Errorf("config: requested an empty dataset (num_train + num_test == 0)")
	}
	if c.Resolution < 1 {
		return fmt.Errorf("config: resolution must be >= 1, got %d", c.Resolution)
	}
	if c.ParticleRadius <= 0 {
		return fmt.Errorf("config: particle_radius must be > 0, got %g", c.ParticleRadius)
	}
	if c.Out == "" {
		return fmt.Errorf("config: output directory must not be empty")
	}
	return nil
}
