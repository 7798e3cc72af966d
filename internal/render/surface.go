package render

import (
	"image/color"

	"github.com/san-kum/plexus/internal/field"
)

// Surface is a 2D drawing context in viewport pixel coordinates.
type Surface interface {
	Clear(width, height float64)
	SetAlpha(a float64)
	SetFillColor(c color.RGBA)
	SetStrokeColor(c color.RGBA)
	FillCircle(x, y, r float64)
	StrokeLine(x0, y0, x1, y1, width float64)
}

// Replay draws frame onto s in command order. Colours come from each
// command's hue through field.Color.
func Replay(frame field.Frame, s Surface, prm field.Params) {
	for _, c := range frame.Commands {
		switch c.Kind {
		case field.CmdClear:
			s.Clear(c.X1, c.Y1)
		case field.CmdCircle:
			s.SetAlpha(c.Alpha)
			s.SetFillColor(field.Color(c.Hue, prm))
			s.FillCircle(c.X0, c.Y0, c.Radius)
		case field.CmdLine:
			s.SetAlpha(c.Alpha)
			s.SetStrokeColor(field.Color(c.Hue, prm))
			s.StrokeLine(c.X0, c.Y0, c.X1, c.Y1, c.Width)
		}
	}
}
