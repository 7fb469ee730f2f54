package control

import (
	"math/rand"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// Key is a host-independent key code. Hosts map their own codes onto it.
type Key int

const (
	KeyNone Key = iota
	KeyReset
	KeySpawn
	KeyDelete
)

func (k Key) String() string {
	switch k {
	case KeyReset:
		return "R"
	case KeySpawn:
		return "Space"
	case KeyDelete:
		return "X"
	default:
		return "none"
	}
}

// State is the pointer state: Idle or Dragging.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// SizeFunc reports the current drawable size of the host surface.
type SizeFunc func() dynamo.Bounds

// Controller turns host ticks and input events into world mutations. It is
// the only writer of the world; hosts call it from a single loop.
type Controller struct {
	world *physics.World
	rng   *rand.Rand
	size  SizeFunc
	count int
	frame int
}

// New creates a controller over world and fills it with count random balls.
// rng is the only randomness source; a fixed seed reproduces a session.
func New(world *physics.World, rng *rand.Rand, count int, size SizeFunc) *Controller {
	c := &Controller{
		world: world,
		rng:   rng,
		size:  size,
		count: count,
	}
	c.Reset()
	return c
}

func (c *Controller) World() *physics.World { return c.world }
func (c *Controller) Frame() int            { return c.frame }
func (c *Controller) Count() int            { return c.count }
func (c *Controller) Bounds() dynamo.Bounds { return c.size() }

func (c *Controller) State() State {
	if _, ok := c.world.Active(); ok {
		return Dragging
	}
	return Idle
}

// Step advances the world one frame against the current surface size.
func (c *Controller) Step() {
	c.world.Step(c.size())
	c.frame++
}

// Render draws every ball in list order over a black background.
func (c *Controller) Render(canvas dynamo.Canvas) {
	canvas.Clear(dynamo.Black)
	for _, b := range c.world.Balls() {
		canvas.FillCircle(b.Pos, b.Radius(), b.Color)
	}
}

// Snapshot returns a copy of the balls in draw order.
func (c *Controller) Snapshot() []physics.Ball {
	return c.world.Balls()
}

// PointerDown grabs the topmost ball under the pointer. It does nothing
// while a ball is already held.
func (c *Controller) PointerDown(x, y float64) {
	if c.State() == Dragging {
		return
	}
	pointer := dynamo.V(x, y)
	i, ok := c.world.BallAt(pointer)
	if !ok {
		return
	}
	c.world.Grab(i, pointer.Sub(c.world.Ball(i).Pos))
	c.world.Drag(pointer, dynamo.Vec2{})
}

// PointerMove drags the held ball and gives it the pointer delta as velocity,
// which becomes the throw velocity on release.
func (c *Controller) PointerMove(x, y, dx, dy float64) {
	c.world.Drag(dynamo.V(x, y), dynamo.V(dx, dy))
}

func (c *Controller) PointerUp() {
	c.world.Release()
}

func (c *Controller) KeyPress(k Key) {
	switch k {
	case KeyReset:
		c.Reset()
	case KeySpawn:
		c.Spawn()
	case KeyDelete:
		c.DeleteActive()
	}
}

// Reset replaces every ball with count fresh random ones and releases the grab.
func (c *Controller) Reset() {
	c.world.Clear()
	bounds := c.size()
	for i := 0; i < c.count; i++ {
		c.world.Add(physics.NewRandomBall(c.rng, bounds, *c.world.Params()))
	}
}

// Spawn adds one random ball and returns its index.
func (c *Controller) Spawn() int {
	return c.world.Add(physics.NewRandomBall(c.rng, c.size(), *c.world.Params()))
}

// DeleteActive removes the held ball, if any, and returns to Idle.
func (c *Controller) DeleteActive() bool {
	g, ok := c.world.Active()
	if !ok {
		return false
	}
	c.world.Remove(g.Index)
	return true
}
