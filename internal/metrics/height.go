package metrics

import (
	"math"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// Height is the area-weighted mean height of the ball centers above the
// floor. Value is the last observed frame.
type Height struct {
	name    string
	current float64
}

func NewHeight() *Height {
	return &Height{name: "height"}
}

func (h *Height) Name() string { return h.name }

func (h *Height) Observe(w *physics.World, bounds dynamo.Bounds) {
	h.current = MeanHeight(w.Balls(), bounds)
}

func (h *Height) Current() float64 { return h.current }
func (h *Height) Value() float64   { return h.current }
func (h *Height) Reset()           { h.current = 0 }

func MeanHeight(balls []physics.Ball, bounds dynamo.Bounds) float64 {
	var sum, mass float64
	for _, b := range balls {
		sum += b.Mass() * (bounds.Height - b.Pos.Y)
		mass += b.Mass()
	}
	if mass == 0 {
		return 0
	}
	return sum / mass
}

// Resting counts balls touching the floor with a vertical speed below eps.
type Resting struct {
	name    string
	eps     float64
	current float64
}

func NewResting(eps float64) *Resting {
	return &Resting{name: "resting", eps: eps}
}

func (r *Resting) Name() string { return r.name }

func (r *Resting) Observe(w *physics.World, bounds dynamo.Bounds) {
	n := 0
	for _, b := range w.Balls() {
		onFloor := b.Pos.Y+b.Radius() >= bounds.Height-1e-9
		if onFloor && math.Abs(b.Vel.Y) < r.eps {
			n++
		}
	}
	r.current = float64(n)
}

func (r *Resting) Current() float64 { return r.current }
func (r *Resting) Value() float64   { return r.current }
func (r *Resting) Reset()           { r.current = 0 }
