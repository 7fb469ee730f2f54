package control

import "sort"

// EventKind names a scripted input event.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	EventKey
)

// Event is one input event fired before the step of Frame.
type Event struct {
	Frame  int
	Kind   EventKind
	X, Y   float64
	DX, DY float64
	Key    Key
}

// Script replays timed input events against a controller. Used by headless
// runs in place of a human at the pointer.
type Script struct {
	events []Event
	next   int
}

func NewScript(events ...Event) *Script {
	evs := make([]Event, len(events))
	copy(evs, events)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Frame < evs[j].Frame })
	return &Script{events: evs}
}

// Throw grabs whatever is under (x, y) at frame, drags it by (dx, dy) per
// frame for steps frames and releases it.
func Throw(frame int, x, y, dx, dy float64, steps int) []Event {
	evs := []Event{{Frame: frame, Kind: EventDown, X: x, Y: y}}
	for i := 1; i <= steps; i++ {
		evs = append(evs, Event{
			Frame: frame + i,
			Kind:  EventMove,
			X:     x + dx*float64(i),
			Y:     y + dy*float64(i),
			DX:    dx,
			DY:    dy,
		})
	}
	return append(evs, Event{Frame: frame + steps + 1, Kind: EventUp})
}

// Apply fires every pending event scheduled at or before frame.
func (s *Script) Apply(c *Controller, frame int) {
	for s.next < len(s.events) && s.events[s.next].Frame <= frame {
		ev := s.events[s.next]
		switch ev.Kind {
		case EventDown:
			c.PointerDown(ev.X, ev.Y)
		case EventMove:
			c.PointerMove(ev.X, ev.Y, ev.DX, ev.DY)
		case EventUp:
			c.PointerUp()
		case EventKey:
			c.KeyPress(ev.Key)
		}
		s.next++
	}
}

func (s *Script) Done() bool { return s.next >= len(s.events) }

func (s *Script) Rewind() { s.next = 0 }
