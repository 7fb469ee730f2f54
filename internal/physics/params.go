package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/balls/internal/dynamo"
)

// Params are the tuning constants of the step. None of them carry physical
// units; velocities are pixels per frame.
type Params struct {
	Gravity     float64 // added to vel.y of every airborne ball each frame
	Jump        float64 // fraction of the penetration corrected positionally
	Bounce      float64 // fraction of the penetration turned into velocity
	Falloff     float64 // radius scale of MassFalloff
	Restitution float64 // wall bounce, before MassFalloff
	MinRadius   float64
	MaxRadius   float64
}

func DefaultParams() Params {
	return Params{
		Gravity:     0.5,
		Jump:        0.6,
		Bounce:      0.05,
		Falloff:     0.05,
		Restitution: 0.5,
		MinRadius:   10,
		MaxRadius:   50,
	}
}

// MassFalloff scales a velocity change down for larger balls so they behave
// as heavier: 1 / max(1, r*Falloff).
func (p Params) MassFalloff(radius float64) float64 {
	return 1.0 / math.Max(1.0, radius*p.Falloff)
}

func (p Params) Validate() error {
	switch {
	case p.Gravity < 0:
		return fmt.Errorf("%w: gravity must be >= 0, got %g", dynamo.ErrParameterBounds, p.Gravity)
	case p.Jump < 0 || p.Jump > 1:
		return fmt.Errorf("%w: jump must be in [0,1], got %g", dynamo.ErrParameterBounds, p.Jump)
	case p.Bounce < 0:
		return fmt.Errorf("%w: bounce must be >= 0, got %g", dynamo.ErrParameterBounds, p.Bounce)
	case p.Falloff < 0:
		return fmt.Errorf("%w: falloff must be >= 0, got %g", dynamo.ErrParameterBounds, p.Falloff)
	case p.Restitution < 0 || p.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0,1], got %g", dynamo.ErrParameterBounds, p.Restitution)
	case p.MinRadius <= 0:
		return fmt.Errorf("%w: min radius must be > 0, got %g", dynamo.ErrParameterBounds, p.MinRadius)
	case p.MaxRadius < p.MinRadius:
		return fmt.Errorf("%w: max radius %g below min radius %g", dynamo.ErrParameterBounds, p.MaxRadius, p.MinRadius)
	}
	return nil
}

func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":     p.Gravity,
		"jump":        p.Jump,
		"bounce":      p.Bounce,
		"falloff":     p.Falloff,
		"restitution": p.Restitution,
		"min_radius":  p.MinRadius,
		"max_radius":  p.MaxRadius,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	return p.SetParams(map[string]float64{name: value})
}

// SetParams applies every value and validates the result once, so the order
// of the overrides does not matter. On error p is unchanged.
func (p *Params) SetParams(values map[string]float64) error {
	next := *p
	for name, value := range values {
		if err := next.set(name, value); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Params) set(name string, value float64) error {
	switch name {
	case "gravity":
		p.Gravity = value
	case "jump":
		p.Jump = value
	case "bounce":
		p.Bounce = value
	case "falloff":
		p.Falloff = value
	case "restitution":
		p.Restitution = value
	case "min_radius":
		p.MinRadius = value
	case "max_radius":
		p.MaxRadius = value
	default:
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, ParamNames())
	}
	return nil
}

// ParamNames returns the tunable parameter names in sorted order.
func ParamNames() []string {
	p := DefaultParams()
	names := make([]string, 0, 7)
	for k := range p.GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
