package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/balls/internal/dynamo"
)

// screenCanvas draws straight to the current raylib frame.
type screenCanvas struct{}

func (screenCanvas) Clear(bg dynamo.Color) {
	rl.ClearBackground(toColor(bg))
}

func (screenCanvas) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), toColor(c))
}

func toColor(c dynamo.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
