package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/metrics"
	"github.com/san-kum/balls/internal/physics"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 38
	chromeLines     = 3
	graphLines      = 7
	historyCapacity = 240

	// DefaultScale is world pixels per braille sub-pixel.
	DefaultScale = 4.0
)

type TickMsg time.Time

// viewport is shared by every copy of the model, so the controller's size
// callback always sees the latest terminal size.
type viewport struct {
	canvas       *Canvas
	termW, termH int
}

func (v *viewport) bounds() dynamo.Bounds { return v.canvas.Bounds() }

// Model is the terminal host: it feeds key and mouse events to the
// controller, steps it on every tick and draws the balls in braille.
type Model struct {
	ctrl          *control.Controller
	vp            *viewport
	fps           int
	running       bool
	showGraph     bool
	energy        *metrics.KineticEnergy
	energyHistory []float64
	params        *physics.Params
	paramKeys     []string
	selected      int
	lastMouse     dynamo.Vec2
	lastFrame     time.Time
	measuredFPS   float64
}

// NewModel builds a terminal session from cfg. The world is sized to a
// default 80x24 terminal until the first resize message arrives.
func NewModel(cfg *config.Config, seed int64, scale float64) Model {
	vp := &viewport{termW: width, termH: height}
	vp.canvas = NewCanvas(width-statsWidth, height-chromeLines, scale)
	world := physics.NewWorld(cfg.Params())
	ctrl := control.New(world, rand.New(rand.NewSource(seed)), cfg.Balls.Count, vp.bounds)

	return Model{
		ctrl:          ctrl,
		vp:            vp,
		fps:           cfg.Window.FPS,
		running:       true,
		energy:        metrics.NewKineticEnergy(),
		energyHistory: make([]float64, 0, historyCapacity),
		params:        world.Params(),
		paramKeys:     physics.ParamNames(),
	}
}

// Run starts the Bubble Tea program in the alternate screen with mouse
// motion reporting and blocks until the user quits.
func Run(cfg *config.Config, seed int64) error {
	p := tea.NewProgram(NewModel(cfg, seed, DefaultScale), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) Controller() *control.Controller { return m.ctrl }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.ctrl.KeyPress(control.KeyReset)
			m.energyHistory = m.energyHistory[:0]
		case " ":
			m.ctrl.KeyPress(control.KeySpawn)
		case "x":
			m.ctrl.KeyPress(control.KeyDelete)
		case "p":
			m.running = !m.running
		case "g":
			m.showGraph = !m.showGraph
			m.resize(m.vp.termW, m.vp.termH)
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

// handleMouse translates terminal cells into world points. The pointer delta
// is measured between consecutive mouse events.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.X >= m.vp.canvas.Width {
		if msg.Action == tea.MouseActionRelease {
			m.ctrl.PointerUp()
		}
		return
	}
	p := m.vp.canvas.ToWorld(msg.X, msg.Y-1)
	delta := p.Sub(m.lastMouse)
	m.lastMouse = p

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(p.X, p.Y)
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(p.X, p.Y, delta.X, delta.Y)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	}
}

// resize fits the canvas to a w x h terminal, leaving room for the stats
// panel and, when shown, the energy graph.
func (m *Model) resize(w, h int) {
	m.vp.termW, m.vp.termH = w, h
	cols := w - statsWidth
	if cols < 10 {
		cols = 10
	}
	rows := h - chromeLines
	if m.showGraph {
		rows -= graphLines
	}
	if rows < 4 {
		rows = 4
	}
	m.vp.canvas = NewCanvas(cols, rows, m.vp.canvas.Scale)
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	// out-of-range values are rejected and the old value kept
	_ = m.params.SetParam(key, m.params.GetParams()[key]*factor)
}

func (m *Model) step(now time.Time) {
	if !m.lastFrame.IsZero() {
		if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
			m.measuredFPS = 1.0 / dt
		}
	}
	m.lastFrame = now

	m.ctrl.Step()

	m.energy.Observe(m.ctrl.World(), m.ctrl.Bounds())
	m.energyHistory = append(m.energyHistory, m.energy.Current())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.ctrl.Render(m.vp.canvas)

	var s strings.Builder
	s.WriteString(headerStyle.Render("BALLS") + "\n")

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.vp.canvas.Render(), statsStyle.Render(m.stats()))
	s.WriteString(main + "\n")

	if m.showGraph && len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(5),
			asciigraph.Width(m.vp.canvas.Width),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("drag: throw • space: spawn • x: delete • r: reset • p: pause • g: graph • tab/↑↓: tune • q: quit"))
	return s.String()
}

func (m Model) stats() string {
	var s strings.Builder

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.ctrl.State() == control.Dragging {
		status += " " + StatusDragging.Render("DRAGGING")
	}
	s.WriteString(status + "\n\n")

	bounds := m.ctrl.Bounds()
	s.WriteString(labelStyle.Render("Balls") + valueStyle.Render(fmt.Sprintf("%d", m.ctrl.World().Len())) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.ctrl.Frame())) + "\n")
	s.WriteString(labelStyle.Render("World") + valueStyle.Render(fmt.Sprintf("%.0fx%.0f", bounds.Width, bounds.Height)) + "\n")
	s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(fmt.Sprintf("%.0f", m.measuredFPS)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3g", m.energy.Current())) + "\n")
	s.WriteString(SparklineChart(m.energyHistory, 28) + "\n\n")

	params := m.params.GetParams()
	for i, key := range m.paramKeys {
		line := fmt.Sprintf("%-13s%.3g", key, params[key])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString(valueStyle.Render("  "+line) + "\n")
		}
	}
	return s.String()
}
