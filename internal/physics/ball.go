package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/balls/internal/dynamo"
)

type Ball struct {
	ID    uint64
	Pos   dynamo.Vec2
	Vel   dynamo.Vec2
	Color dynamo.Color

	radius float64
}

// NewBall creates a resting ball. A non-positive radius is a programming
// error and panics.
func NewBall(x, y, radius float64, c dynamo.Color) Ball {
	if !(radius > 0) {
		panic("physics: ball radius must be positive")
	}
	return Ball{
		Pos:    dynamo.V(x, y),
		Color:  c,
		radius: radius,
	}
}

// NewRandomBall creates a ball with a random radius, color and position that
// lies entirely inside bounds.
//
// The radius is drawn from [MinRadius, MaxRadius) but never exceeds half of
// the smaller window side, so the ball always fits. When the window leaves no
// room on an axis the ball is centered on that axis.
func NewRandomBall(rng *rand.Rand, bounds dynamo.Bounds, p Params) Ball {
	maxR := math.Min(p.MaxRadius, math.Min(bounds.Width, bounds.Height)/2)
	if maxR <= 0 {
		maxR = 1
	}
	minR := math.Min(p.MinRadius, maxR)

	radius := uniform(rng, minR, maxR)
	if radius <= 0 {
		radius = maxR
	}
	x := uniform(rng, radius, bounds.Width-radius)
	y := uniform(rng, radius, bounds.Height-radius)

	return NewBall(x, y, radius, RandomColor(rng))
}

// RandomColor returns an opaque color with random channels.
func RandomColor(rng *rand.Rand) dynamo.Color {
	return dynamo.Color{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
}

// uniform draws from [lo, hi); an empty range yields its midpoint.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}

func (b Ball) Radius() float64 { return b.radius }

// Mass is proportional to area.
func (b Ball) Mass() float64 { return b.radius * b.radius }

func (b Ball) Collides(other Ball) bool {
	return b.Pos.Dist(other.Pos) <= b.radius+other.radius
}

func (b Ball) Contains(p dynamo.Vec2) bool {
	return b.Pos.Dist(p) <= b.radius
}

// Penetration is the overlap depth of two circles, zero when apart.
func (b Ball) Penetration(other Ball) float64 {
	return math.Max(0, b.radius+other.radius-b.Pos.Dist(other.Pos))
}

// MoveFrom pushes b away from other along the line between their centers.
// Only b is changed; the caller visits the pair in both orders.
func (b *Ball) MoveFrom(other Ball, p Params) {
	d := b.Pos.Sub(other.Pos)
	angle := math.Atan2(d.Y, d.X)
	force := b.radius + other.radius - d.Len()

	sin, cos := math.Sincos(angle)
	push := dynamo.V(cos*force, sin*force)

	b.Vel = b.Vel.Add(push.Scale(p.Bounce * p.MassFalloff(b.radius)))
	b.Pos = b.Pos.Add(push.Scale(p.Jump))
}

// bounceWalls clamps b inside the left, right and floor edges. There is no
// ceiling.
func (b *Ball) bounceWalls(bounds dynamo.Bounds, p Params) {
	k := -p.Restitution * p.MassFalloff(b.radius)
	r := b.radius

	if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel.X *= k
	}
	if b.Pos.X+r >= bounds.Width {
		b.Pos.X = bounds.Width - r
		b.Vel.X *= k
	}
	if b.Pos.Y+r >= bounds.Height {
		b.Pos.Y = bounds.Height - r
		b.Vel.Y *= k
	}
}
