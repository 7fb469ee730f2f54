package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/balls/internal/dynamo"
)

func TestMassFalloff(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		radius   float64
		expected float64
	}{
		{10, 1.0},
		{20, 1.0},
		{40, 0.5},
		{50, 0.4},
	}

	for _, tt := range tests {
		got := p.MassFalloff(tt.radius)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("radius %.0f: expected falloff %f, got %f", tt.radius, tt.expected, got)
		}
	}
}

func TestNewBallPanicsOnNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -5, math.NaN()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for radius %v", r)
				}
			}()
			NewBall(0, 0, r, dynamo.White)
		}()
	}
}

func TestNewRandomBallFitsWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultParams()
	bounds := dynamo.Bounds{Width: 800, Height: 600}

	for i := 0; i < 500; i++ {
		b := NewRandomBall(rng, bounds, p)
		r := b.Radius()
		if r < p.MinRadius || r >= p.MaxRadius {
			t.Fatalf("radius %f outside [%f,%f)", r, p.MinRadius, p.MaxRadius)
		}
		if b.Pos.X < r || b.Pos.X > bounds.Width-r || b.Pos.Y < r || b.Pos.Y > bounds.Height-r {
			t.Fatalf("ball %+v r=%f does not fit %+v", b.Pos, r, bounds)
		}
		if b.Color.A != 255 {
			t.Fatalf("expected opaque color, got %+v", b.Color)
		}
	}
}

func TestNewRandomBallSmallWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bounds := dynamo.Bounds{Width: 30, Height: 600}

	for i := 0; i < 100; i++ {
		b := NewRandomBall(rng, bounds, DefaultParams())
		r := b.Radius()
		if r <= 0 || r > 15 {
			t.Fatalf("expected radius in (0,15], got %f", r)
		}
		if b.Pos.X < r || b.Pos.X > bounds.Width-r {
			t.Fatalf("x=%f does not fit r=%f", b.Pos.X, r)
		}
	}
}

func TestNewRandomBallDeterministic(t *testing.T) {
	bounds := dynamo.Bounds{Width: 800, Height: 600}
	a := NewRandomBall(rand.New(rand.NewSource(42)), bounds, DefaultParams())
	b := NewRandomBall(rand.New(rand.NewSource(42)), bounds, DefaultParams())
	if a != b {
		t.Errorf("same seed produced different balls: %+v vs %+v", a, b)
	}
}

func TestCollidesAndContains(t *testing.T) {
	a := NewBall(0, 0, 10, dynamo.White)
	b := NewBall(15, 0, 10, dynamo.White)
	c := NewBall(30, 0, 5, dynamo.White)
	d := NewBall(100, 0, 5, dynamo.White)

	if !a.Collides(b) {
		t.Error("expected overlapping balls to collide")
	}
	if !b.Collides(c) {
		t.Error("expected touching balls to collide")
	}
	if a.Collides(d) {
		t.Error("expected distant balls not to collide")
	}
	if got := a.Penetration(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("expected penetration 5, got %f", got)
	}
	if got := a.Penetration(d); got != 0 {
		t.Errorf("expected zero penetration, got %f", got)
	}

	if !a.Contains(dynamo.V(10, 0)) {
		t.Error("edge point should be contained")
	}
	if a.Contains(dynamo.V(7.1, 7.1)) {
		t.Error("point outside radius should not be contained")
	}
}

func TestMoveFromPushesAway(t *testing.T) {
	p := DefaultParams()
	a := NewBall(0, 0, 10, dynamo.White)
	b := NewBall(15, 0, 10, dynamo.White)

	a.MoveFrom(b, p)

	if a.Pos.X >= 0 {
		t.Errorf("expected a to move left, got x=%f", a.Pos.X)
	}
	if math.Abs(a.Pos.X+5*p.Jump) > 1e-9 {
		t.Errorf("expected x=%f, got %f", -5*p.Jump, a.Pos.X)
	}
	if math.Abs(a.Vel.X+5*p.Bounce) > 1e-9 {
		t.Errorf("expected vx=%f, got %f", -5*p.Bounce, a.Vel.X)
	}
	if math.Abs(a.Pos.Y) > 1e-9 || math.Abs(a.Vel.Y) > 1e-9 {
		t.Errorf("expected no vertical motion, got pos %+v vel %+v", a.Pos, a.Vel)
	}
	if b.Pos.X != 15 {
		t.Error("MoveFrom must not touch the other ball")
	}
}

func TestSetParam(t *testing.T) {
	p := DefaultParams()

	if err := p.SetParam("gravity", 0.25); err != nil {
		t.Fatalf("set gravity: %v", err)
	}
	if p.Gravity != 0.25 {
		t.Errorf("expected gravity 0.25, got %f", p.Gravity)
	}

	if err := p.SetParam("restitution", 2); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if p.Restitution != 0.5 {
		t.Errorf("rejected value must not be applied, got %f", p.Restitution)
	}

	if err := p.SetParam("nope", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}

	if len(p.GetParams()) != len(ParamNames()) {
		t.Error("GetParams and ParamNames disagree")
	}
}

func TestSetParamsValidatesOnce(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := DefaultParams()
		if err := p.SetParams(map[string]float64{"min_radius": 60, "max_radius": 80}); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if p.MinRadius != 60 || p.MaxRadius != 80 {
			t.Fatalf("radius range not applied: %+v", p)
		}
	}

	p := DefaultParams()
	err := p.SetParams(map[string]float64{"gravity": 0.1, "min_radius": 60})
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if p != DefaultParams() {
		t.Errorf("rejected set must leave params unchanged, got %+v", p)
	}
}
