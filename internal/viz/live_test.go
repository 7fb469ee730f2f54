package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/control"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(config.DefaultConfig(), 1, DefaultScale)
}

func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelFillsDefaultTerminal(t *testing.T) {
	m := newTestModel(t)

	if got := m.Controller().World().Len(); got != 10 {
		t.Fatalf("expected 10 balls, got %d", got)
	}
	b := m.Controller().Bounds()
	if b.Width != float64((width-statsWidth)*2)*DefaultScale {
		t.Errorf("unexpected world width %v", b.Width)
	}
	for i, ball := range m.Controller().Snapshot() {
		if ball.Pos.X+ball.Radius() > b.Width || ball.Pos.Y+ball.Radius() > b.Height {
			t.Errorf("ball %d at %+v r=%.1f outside %+v", i, ball.Pos, ball.Radius(), b)
		}
	}
}

func TestKeysDriveController(t *testing.T) {
	m := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.Controller().World().Len(); got != 11 {
		t.Errorf("space: expected 11 balls, got %d", got)
	}

	m = press(m, runeKey("x"))
	if got := m.Controller().World().Len(); got != 11 {
		t.Errorf("x while idle: expected 11 balls, got %d", got)
	}

	m = press(m, runeKey("r"))
	if got := m.Controller().World().Len(); got != 10 {
		t.Errorf("r: expected 10 balls, got %d", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%q returned no command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", msg.String())
		}
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m := newTestModel(t)

	m = press(m, TickMsg{})
	if m.Controller().Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", m.Controller().Frame())
	}

	m = press(m, runeKey("p"))
	m = press(m, TickMsg{})
	if m.Controller().Frame() != 1 {
		t.Errorf("paused model stepped to frame %d", m.Controller().Frame())
	}
	if len(m.energyHistory) != 1 {
		t.Errorf("expected 1 energy sample, got %d", len(m.energyHistory))
	}
}

func TestWindowResizeChangesBounds(t *testing.T) {
	m := newTestModel(t)
	m = press(m, tea.WindowSizeMsg{Width: 138, Height: 53})

	b := m.Controller().Bounds()
	if b.Width != 800 || b.Height != 800 {
		t.Errorf("bounds = %+v, want 800x800", b)
	}
	m = press(m, runeKey("r"))
	for i, ball := range m.Controller().Snapshot() {
		if ball.Pos.X > b.Width || ball.Pos.Y > b.Height {
			t.Errorf("ball %d spawned outside resized window at %+v", i, ball.Pos)
		}
	}
}

func TestParamTuning(t *testing.T) {
	m := newTestModel(t)
	key := m.paramKeys[0]
	before := m.params.GetParams()[key]

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.params.GetParams()[key]; math.Abs(got-before*1.05) > 1e-12 {
		t.Errorf("%s = %v, want %v", key, got, before*1.05)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != 1 {
		t.Errorf("tab selected %d", m.selected)
	}
	for range m.paramKeys {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.selected != 1 {
		t.Errorf("tab did not wrap, selected %d", m.selected)
	}
}

func TestMouseDragAndThrow(t *testing.T) {
	m := newTestModel(t)
	ball := m.Controller().Snapshot()[0]

	col := int(ball.Pos.X / (2 * DefaultScale))
	row := int(ball.Pos.Y / (4 * DefaultScale))
	m = press(m, tea.MouseMsg{X: col, Y: row + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Controller().State() != control.Dragging {
		t.Fatalf("press on ball at %+v did not grab", ball.Pos)
	}

	step := 2
	if col > 20 {
		step = -2
	}
	m = press(m, tea.MouseMsg{X: col + step, Y: row + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	grab, _ := m.Controller().World().Active()
	held := m.Controller().World().Ball(grab.Index)
	if want := float64(step) * 2 * DefaultScale; held.Vel.X != want || held.Vel.Y != 0 {
		t.Errorf("drag velocity = %+v, want (%v, 0)", held.Vel, want)
	}

	m = press(m, tea.MouseMsg{X: col + step, Y: row + 1, Action: tea.MouseActionRelease})
	if m.Controller().State() != control.Idle {
		t.Error("release did not drop the ball")
	}
}

func TestMouseOverStatsPanelIgnored(t *testing.T) {
	m := newTestModel(t)
	m = press(m, tea.MouseMsg{X: width - 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Controller().State() != control.Idle {
		t.Error("press over the stats panel grabbed a ball")
	}
}

func TestViewRendersStats(t *testing.T) {
	m := newTestModel(t)
	m = press(m, TickMsg{})
	m = press(m, runeKey("g"))
	m = press(m, TickMsg{})

	out := m.View()
	for _, want := range []string{"BALLS", "Balls", "Frame", "gravity", "kinetic energy"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGraphToggleShrinksCanvas(t *testing.T) {
	m := newTestModel(t)
	rows := m.vp.canvas.Height

	m = press(m, runeKey("g"))
	if got := m.vp.canvas.Height; got != rows-graphLines {
		t.Errorf("graph on: canvas rows = %d, want %d", got, rows-graphLines)
	}
	m = press(m, runeKey("g"))
	if got := m.vp.canvas.Height; got != rows {
		t.Errorf("graph off: canvas rows = %d, want %d", got, rows)
	}

	m = press(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(m, runeKey("g"))
	if got, want := m.vp.canvas.Height, 40-chromeLines-graphLines; got != want {
		t.Errorf("graph on after resize: canvas rows = %d, want %d", got, want)
	}
	if got := m.vp.canvas.Width; got != 100-statsWidth {
		t.Errorf("graph toggle changed columns to %d", got)
	}
}
