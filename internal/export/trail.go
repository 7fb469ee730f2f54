package export

import (
	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
)

// Trail records the path of one ball across a run. It follows the ball by ID,
// so re-sorting the world does not lose it. The first ball grabbed becomes
// the tracked ball; if nothing is ever grabbed the largest ball is tracked.
type Trail struct {
	id      uint64
	tracked bool
	Points  []dynamo.Vec2
	Color   dynamo.Color
}

func NewTrail() *Trail {
	return &Trail{}
}

func (t *Trail) OnFrame(c *control.Controller, frame int) {
	w := c.World()
	if !t.tracked {
		if g, ok := w.Active(); ok {
			t.follow(w.Ball(g.Index).ID)
		} else if len(t.Points) == 0 && w.Len() > 0 {
			t.id = w.Ball(0).ID
		}
	}

	for _, b := range c.Snapshot() {
		if b.ID == t.id {
			t.Points = append(t.Points, b.Pos)
			t.Color = b.Color
			return
		}
	}
}

func (t *Trail) follow(id uint64) {
	if id != t.id {
		t.Points = t.Points[:0]
	}
	t.id = id
	t.tracked = true
}
