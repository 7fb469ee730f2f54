package sim

import "github.com/san-kum/balls/internal/control"

// Input feeds events to the controller before each frame's step. A
// *control.Script satisfies it.
type Input interface {
	Apply(c *control.Controller, frame int)
}

type Observer interface {
	OnFrame(c *control.Controller, frame int)
}

type Config struct {
	Frames int
	// Validate stops the run at the first NaN or Inf position or velocity.
	Validate bool
}

func DefaultConfig() Config {
	return Config{
		Frames:   600,
		Validate: true,
	}
}

// Result holds per-frame metric series and the summary of each metric.
type Result struct {
	Frames  int
	Series  map[string][]float64
	Metrics map[string]float64
	Balls   int
}
