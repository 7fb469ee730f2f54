package config

import (
	"fmt"
	"os"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultTitle  = "Balls"
	DefaultFPS    = 60
	DefaultCount  = 10
)

type Config struct {
	Window  WindowConfig  `yaml:"window" json:"window"`
	Balls   BallsConfig   `yaml:"balls" json:"balls"`
	Physics PhysicsConfig `yaml:"physics" json:"physics"`
	Seed    int64         `yaml:"seed" json:"seed"`
}

type WindowConfig struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Title  string `yaml:"title" json:"title"`
	FPS    int    `yaml:"fps" json:"fps"`
}

type BallsConfig struct {
	Count     int     `yaml:"count" json:"count"`
	MinRadius float64 `yaml:"min_radius" json:"min_radius"`
	MaxRadius float64 `yaml:"max_radius" json:"max_radius"`
}

type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity" json:"gravity"`
	Jump        float64 `yaml:"jump" json:"jump"`
	Bounce      float64 `yaml:"bounce" json:"bounce"`
	Falloff     float64 `yaml:"falloff" json:"falloff"`
	Restitution float64 `yaml:"restitution" json:"restitution"`
}

func DefaultConfig() *Config {
	p := physics.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			FPS:    DefaultFPS,
		},
		Balls: BallsConfig{
			Count:     DefaultCount,
			MinRadius: p.MinRadius,
			MaxRadius: p.MaxRadius,
		},
		Physics: PhysicsConfig{
			Gravity:     p.Gravity,
			Jump:        p.Jump,
			Bounce:      p.Bounce,
			Falloff:     p.Falloff,
			Restitution: p.Restitution,
		},
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads a YAML file over base, e.g. a preset. base is not modified.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInto(base, data)
}

func Parse(data []byte) (*Config, error) {
	return ParseInto(DefaultConfig(), data)
}

// ParseInto decodes data over a copy of base and validates the result.
func ParseInto(base *Config, data []byte) (*Config, error) {
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		Gravity:     c.Physics.Gravity,
		Jump:        c.Physics.Jump,
		Bounce:      c.Physics.Bounce,
		Falloff:     c.Physics.Falloff,
		Restitution: c.Physics.Restitution,
		MinRadius:   c.Balls.MinRadius,
		MaxRadius:   c.Balls.MaxRadius,
	}
}

// SetParams copies p back into the physics and radius sections.
func (c *Config) SetParams(p physics.Params) {
	c.Physics = PhysicsConfig{
		Gravity:     p.Gravity,
		Jump:        p.Jump,
		Bounce:      p.Bounce,
		Falloff:     p.Falloff,
		Restitution: p.Restitution,
	}
	c.Balls.MinRadius = p.MinRadius
	c.Balls.MaxRadius = p.MaxRadius
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{Width: float64(c.Window.Width), Height: float64(c.Window.Height)}
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window must be positive, got %dx%d", dynamo.ErrParameterBounds, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrParameterBounds, c.Window.FPS)
	}
	if c.Balls.Count < 0 {
		return fmt.Errorf("%w: ball count must be >= 0, got %d", dynamo.ErrParameterBounds, c.Balls.Count)
	}
	return c.Params().Validate()
}
