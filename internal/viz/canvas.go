package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/balls/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid. Each cell holds 2x4 sub-pixels and one
// color, the color of the last circle that touched it.
//
// It implements dynamo.Canvas: world coordinates are divided by Scale to get
// sub-pixels.
type Canvas struct {
	Width, Height int
	Scale         float64
	Grid          [][]rune
	Colors        [][]dynamo.Color
}

func NewCanvas(w, h int, scale float64) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Scale:  scale,
		Grid:   make([][]rune, h),
		Colors: make([][]dynamo.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]dynamo.Color, w)
	}
	c.Clear(dynamo.Black)
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col dynamo.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas. The terminal background stands in for bg.
func (c *Canvas) Clear(bg dynamo.Color) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = dynamo.Color{}
		}
	}
}

// FillCircle sets every sub-pixel whose center lies inside the circle. A
// circle smaller than one sub-pixel still marks its center.
func (c *Canvas) FillCircle(center dynamo.Vec2, radius float64, col dynamo.Color) {
	cx, cy, r := center.X/c.Scale, center.Y/c.Scale, radius/c.Scale

	if r < 1 {
		c.Set(int(math.Floor(cx)), int(math.Floor(cy)), col)
		return
	}

	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, col)
			}
		}
	}
}

// ToWorld maps a terminal cell to the world point at its center.
func (c *Canvas) ToWorld(col, row int) dynamo.Vec2 {
	return dynamo.V((float64(col)+0.5)*2*c.Scale, (float64(row)+0.5)*4*c.Scale)
}

// Bounds is the world size the canvas covers.
func (c *Canvas) Bounds() dynamo.Bounds {
	return dynamo.Bounds{
		Width:  float64(c.Width*2) * c.Scale,
		Height: float64(c.Height*4) * c.Scale,
	}
}

// String renders the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid with one foreground color per run of cells.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col.A != 0 {
				run = lipgloss.NewStyle().Foreground(hexColor(col)).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func hexColor(c dynamo.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
