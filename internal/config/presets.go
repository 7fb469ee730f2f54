package config

import "sort"

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"classic": {
		Description: "ten balls, default tuning",
		Apply:       func(c *Config) {},
	},
	"moon": {
		Description: "low gravity, long arcs",
		Apply: func(c *Config) {
			c.Physics.Gravity = 0.08
		},
	},
	"bouncy": {
		Description: "lively walls and floor",
		Apply: func(c *Config) {
			c.Physics.Restitution = 0.9
			c.Physics.Falloff = 0.02
		},
	},
	"crowd": {
		Description: "forty small balls",
		Apply: func(c *Config) {
			c.Balls.Count = 40
			c.Balls.MinRadius = 6
			c.Balls.MaxRadius = 18
		},
	},
	"heavy": {
		Description: "few large balls that barely budge",
		Apply: func(c *Config) {
			c.Balls.Count = 6
			c.Balls.MinRadius = 40
			c.Balls.MaxRadius = 80
			c.Physics.Falloff = 0.08
		},
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
