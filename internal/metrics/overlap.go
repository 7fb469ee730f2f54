package metrics

import (
	"math"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// Overlap tracks the deepest pairwise penetration. Collision resolution is
// soft, so some overlap is expected; Value is the worst frame seen.
type Overlap struct {
	name    string
	current float64
	max     float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(w *physics.World, bounds dynamo.Bounds) {
	o.current = MaxPenetration(w.Balls())
	o.max = math.Max(o.max, o.current)
}

func (o *Overlap) Current() float64 { return o.current }
func (o *Overlap) Value() float64   { return o.max }

func (o *Overlap) Reset() {
	o.current = 0
	o.max = 0
}

func MaxPenetration(balls []physics.Ball) float64 {
	deepest := 0.0
	for i := range balls {
		for j := i + 1; j < len(balls); j++ {
			deepest = math.Max(deepest, balls[i].Penetration(balls[j]))
		}
	}
	return deepest
}
