package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/balls/internal/dynamo"
)

// SVG is a dynamo.Canvas that records the frame as SVG circles.
type SVG struct {
	bounds dynamo.Bounds
	body   strings.Builder
}

func NewSVG(bounds dynamo.Bounds) *SVG {
	return &SVG{bounds: bounds}
}

func (s *SVG) Clear(bg dynamo.Color) {
	s.body.Reset()
	fmt.Fprintf(&s.body, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", hex(bg))
}

func (s *SVG) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	fmt.Fprintf(&s.body, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", center.X, center.Y, radius, hex(c))
}

// AddTrail draws a polyline through points on top of the frame.
func (s *SVG) AddTrail(points []dynamo.Vec2, stroke dynamo.Color) {
	if len(points) < 2 {
		return
	}
	s.body.WriteString(`<path fill="none" stroke="` + hex(stroke) + `" stroke-width="1.5" d="M`)
	for i, p := range points {
		if i > 0 {
			s.body.WriteString(" L")
		}
		fmt.Fprintf(&s.body, "%.1f,%.1f", p.X, p.Y)
	}
	s.body.WriteString("\"/>\n")
}

func (s *SVG) String() string {
	w, h := s.bounds.Width, s.bounds.Height
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
%s</svg>
`, w, h, w, h, s.body.String())
}

func hex(c dynamo.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
