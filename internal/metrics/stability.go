package metrics

import (
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// Containment is the fraction of frames in which every ball sat between the
// side walls and above the floor. Balls above the top edge still count as
// contained; there is no ceiling.
type Containment struct {
	name       string
	current    float64
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(w *physics.World, bounds dynamo.Bounds) {
	c.samples++
	c.current = 1
	const tol = 1e-9
	for _, b := range w.Balls() {
		r := b.Radius()
		if b.Pos.X < r-tol || b.Pos.X > bounds.Width-r+tol || b.Pos.Y > bounds.Height-r+tol {
			c.violations++
			c.current = 0
			break
		}
	}
}

func (c *Containment) Current() float64 { return c.current }

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.current = 0
	c.violations = 0
	c.samples = 0
}
