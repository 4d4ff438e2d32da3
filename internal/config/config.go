package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.005
	DefaultDuration    = 10.0
	DefaultTemperature = 300.0
	DefaultHeavyCount  = 200
	DefaultWidth       = 10000.0
)

type Config struct {
	Scenario    string           `yaml:"scenario"`
	Dt          float64          `yaml:"dt"`
	Duration    float64          `yaml:"duration"`
	Seed        int64            `yaml:"seed"`
	Temperature float64          `yaml:"temperature"`
	Particles   ParticlesConfig  `yaml:"particles"`
	Container   ContainerConfig  `yaml:"container"`
	Collisions  CollisionsConfig `yaml:"collisions"`
}

type ParticlesConfig struct {
	Heavy int `yaml:"heavy"`
	Light int `yaml:"light"`
}

type ContainerConfig struct {
	Width            float64          `yaml:"width"`
	LeftWallVelocity float64          `yaml:"left_wall_velocity"`
	DividerX         float64          `yaml:"divider_x"`
	LidWidth         float64          `yaml:"lid_width"`
	Obstacles        []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig positions a rectangular obstacle by its bottom-right
// corner, offset leftward and upward from the container's bottom-right
// interior corner.
type ObstacleConfig struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

type CollisionsConfig struct {
	ParticleParticle bool    `yaml:"particle_particle"`
	CellLength       float64 `yaml:"cell_length"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "ideal",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Temperature: DefaultTemperature,
		Particles: ParticlesConfig{
			Heavy: DefaultHeavyCount,
		},
		Container: ContainerConfig{
			Width: DefaultWidth,
		},
		Collisions: CollisionsConfig{
			ParticleParticle: true,
		},
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("config: temperature must be positive, got %g", c.Temperature)
	}
	if c.Particles.Heavy < 0 || c.Particles.Light < 0 {
		return fmt.Errorf("config: particle counts must be non-negative")
	}
	if c.Collisions.CellLength < 0 {
		return fmt.Errorf("config: cell length must be non-negative, got %g", c.Collisions.CellLength)
	}
	return nil
}
