package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// surface draws straight into the current raylib frame. It must only be
// used between rl.BeginDrawing and rl.EndDrawing.
type surface struct {
	bg     rl.Color
	alpha  float32
	fill   rl.Color
	stroke rl.Color
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *surface) Clear(width, height float64) { rl.ClearBackground(s.bg) }

func (s *surface) SetAlpha(a float64)          { s.alpha = float32(a) }
func (s *surface) SetFillColor(c color.RGBA)   { s.fill = toColor(c) }
func (s *surface) SetStrokeColor(c color.RGBA) { s.stroke = toColor(c) }

func (s *surface) FillCircle(x, y, r float64) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rl.ColorAlpha(s.fill, s.alpha))
}

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		float32(width),
		rl.ColorAlpha(s.stroke, s.alpha),
	)
}
