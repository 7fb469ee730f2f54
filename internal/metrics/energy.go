package metrics

import (
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// KineticEnergy is Σ ½·m·|v|² with mass proportional to area. Value is the
// mean over observed frames.
type KineticEnergy struct {
	name    string
	current float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *physics.World, bounds dynamo.Bounds) {
	e.current = Energy(w.Balls())
	e.total += e.current
	e.samples++
}

func (e *KineticEnergy) Current() float64 { return e.current }

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.total = 0
	e.samples = 0
}

func Energy(balls []physics.Ball) float64 {
	sum := 0.0
	for _, b := range balls {
		sum += 0.5 * b.Mass() * b.Vel.LenSq()
	}
	return sum
}
