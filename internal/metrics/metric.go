package metrics

import (
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// Metric observes the world once per frame, after the step.
//
// Current is the value at the last observed frame and feeds per-frame series;
// Value summarizes every frame since the last Reset.
type Metric interface {
	Name() string
	Observe(w *physics.World, bounds dynamo.Bounds)
	Current() float64
	Value() float64
	Reset()
}

// Defaults returns a fresh instance of every built-in metric.
func Defaults() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewOverlap(),
		NewHeight(),
		NewResting(0.5),
		NewContainment(),
	}
}
