package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/balls/internal/dynamo"
)

// Grab is the non-owning reference to the ball under the pointer: its index
// in the world and the vector from its center to the pointer at grab time.
type Grab struct {
	Index  int
	Offset dynamo.Vec2
}

// World owns every ball and the optional active grab.
//
// Balls are kept sorted largest to smallest after every insertion, so
// drawing in order puts small balls on top and BallAt walks from the end.
type World struct {
	params Params
	balls  []Ball
	active *Grab
	nextID uint64
}

func NewWorld(p Params) *World {
	return &World{
		params: p,
		balls:  make([]Ball, 0, 16),
	}
}

func (w *World) Params() *Params { return &w.params }

func (w *World) Len() int { return len(w.balls) }

func (w *World) Ball(i int) Ball {
	w.mustIndex(i)
	return w.balls[i]
}

// Balls returns a copy of the ball list in draw order.
func (w *World) Balls() []Ball {
	out := make([]Ball, len(w.balls))
	copy(out, w.balls)
	return out
}

// Add inserts b, assigns it an ID and restores size order. An active grab
// keeps pointing at the same ball. It returns the new ball's index.
func (w *World) Add(b Ball) int {
	w.nextID++
	b.ID = w.nextID

	var activeID uint64
	if w.active != nil {
		activeID = w.balls[w.active.Index].ID
	}

	w.balls = append(w.balls, b)
	sort.SliceStable(w.balls, func(i, j int) bool {
		return w.balls[i].radius > w.balls[j].radius
	})

	if w.active != nil {
		w.active.Index = w.indexOf(activeID)
	}
	return w.indexOf(b.ID)
}

// Remove deletes the ball at i. Removing the active ball releases the grab
// in the same call; a grab on a later ball is shifted down.
func (w *World) Remove(i int) {
	w.mustIndex(i)
	if w.active != nil {
		switch {
		case w.active.Index == i:
			w.active = nil
		case w.active.Index > i:
			w.active.Index--
		}
	}
	w.balls = append(w.balls[:i], w.balls[i+1:]...)
}

// Clear removes every ball and releases the grab.
func (w *World) Clear() {
	w.balls = w.balls[:0]
	w.active = nil
}

func (w *World) Active() (Grab, bool) {
	if w.active == nil {
		return Grab{}, false
	}
	return *w.active, true
}

func (w *World) IsActive(i int) bool {
	return w.active != nil && w.active.Index == i
}

// Grab makes ball i the active ball, replacing any previous grab.
func (w *World) Grab(i int, offset dynamo.Vec2) {
	w.mustIndex(i)
	w.active = &Grab{Index: i, Offset: offset}
}

func (w *World) Release() { w.active = nil }

// Drag places the active ball under the pointer, keeping the grab offset,
// and sets its velocity. It is a no-op without an active ball.
func (w *World) Drag(pointer, vel dynamo.Vec2) {
	if w.active == nil {
		return
	}
	b := &w.balls[w.active.Index]
	b.Pos = pointer.Sub(w.active.Offset)
	b.Vel = vel
}

// BallAt returns the topmost ball containing p. Smaller balls are drawn
// later and win over larger ones underneath.
func (w *World) BallAt(p dynamo.Vec2) (int, bool) {
	for i := len(w.balls) - 1; i >= 0; i-- {
		if w.balls[i].Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Step advances the world by one frame: gravity, integration, pairwise
// collision, then wall clamping. The active ball is skipped by the first
// three phases but still pushes the balls it overlaps.
func (w *World) Step(bounds dynamo.Bounds) {
	p := w.params

	for i := range w.balls {
		if w.IsActive(i) {
			continue
		}
		b := &w.balls[i]
		if b.Pos.Y+b.radius < bounds.Height {
			b.Vel.Y += p.Gravity
		}
	}

	for i := range w.balls {
		if w.IsActive(i) {
			continue
		}
		b := &w.balls[i]
		b.Pos = b.Pos.Add(b.Vel)
	}

	for i := range w.balls {
		if w.IsActive(i) {
			continue
		}
		for j := range w.balls {
			if i == j {
				continue
			}
			other := w.balls[j]
			if w.balls[i].Collides(other) {
				w.balls[i].MoveFrom(other, p)
			}
		}
	}

	for i := range w.balls {
		w.balls[i].bounceWalls(bounds, p)
	}
}

func (w *World) indexOf(id uint64) int {
	for i := range w.balls {
		if w.balls[i].ID == id {
			return i
		}
	}
	panic(fmt.Sprintf("physics: ball %d not in world", id))
}

func (w *World) mustIndex(i int) {
	if i < 0 || i >= len(w.balls) {
		panic(fmt.Sprintf("physics: ball index %d out of range [0,%d)", i, len(w.balls)))
	}
}
