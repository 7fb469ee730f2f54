package sim

import (
	"math/rand"

	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// NewHeadless builds a simulator over a fresh world sized to the configured
// window. The window size never changes during the run.
func NewHeadless(cfg *config.Config, seed int64, input Input) *Simulator {
	bounds := cfg.Bounds()
	world := physics.NewWorld(cfg.Params())
	ctrl := control.New(world, rand.New(rand.NewSource(seed)), cfg.Balls.Count, func() dynamo.Bounds { return bounds })
	return New(ctrl, input)
}

func (s *Simulator) Controller() *control.Controller { return s.ctrl }
