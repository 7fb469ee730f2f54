package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

// keymap maps raylib keys onto controller keys, checked in this order.
var keymap = []struct {
	code int32
	key  control.Key
}{
	{rl.KeyR, control.KeyReset},
	{rl.KeySpace, control.KeySpawn},
	{rl.KeyX, control.KeyDelete},
}

type App struct {
	Ctrl    *control.Controller
	ShowHUD bool

	canvas screenCanvas
	quit   bool
}

// initWindow opens a resizable window of the configured size and title and
// sets the target FPS. The default exit key is disabled; Q quits.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

// screenSize reports the current drawable size, which follows window resizes.
func screenSize() dynamo.Bounds {
	return dynamo.Bounds{
		Width:  float64(rl.GetScreenWidth()),
		Height: float64(rl.GetScreenHeight()),
	}
}

func NewApp(cfg *config.Config, seed int64) *App {
	world := physics.NewWorld(cfg.Params())
	rng := rand.New(rand.NewSource(seed))
	return &App{
		Ctrl:    control.New(world, rng, cfg.Balls.Count, screenSize),
		ShowHUD: true,
	}
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(cfg *config.Config, seed int64) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg, seed)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// Update forwards this frame's input to the controller, then steps.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	mouse := rl.GetMousePosition()
	x, y := float64(mouse.X), float64(mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Ctrl.PointerDown(x, y)
	}
	if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
		a.Ctrl.PointerMove(x, y, float64(delta.X), float64(delta.Y))
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Ctrl.PointerUp()
	}

	for _, k := range keymap {
		if rl.IsKeyPressed(k.code) {
			a.Ctrl.KeyPress(k.key)
		}
	}

	a.Ctrl.Step()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.Ctrl.Render(a.canvas)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText("balls", 20, 16, 20, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %d", a.Ctrl.World().Len()), 84, 19, 16, ColText)

	state := a.Ctrl.State()
	col := ColTextDim
	if state == control.Dragging {
		col = ColSelect
	}
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	rl.DrawText(state.String(), int32(w-110), 18, 16, col)

	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, int32(h-28), 14, ColTextDim)
	rl.DrawText("[DRAG] THROW  [SPACE] SPAWN  [X] DELETE  [R] RESET  [H] HUD  [Q] QUIT", 110, int32(h-28), 14, ColTextDim)
}
