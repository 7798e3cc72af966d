package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/render"
)

const svgBackground = "#0a0a0a"

// SVG is a render.Surface that builds an SVG document element by element.
type SVG struct {
	sb     strings.Builder
	width  float64
	height float64
	alpha  float64
	fill   color.RGBA
	stroke color.RGBA
}

func NewSVG() *SVG {
	return &SVG{alpha: 1}
}

func (s *SVG) Clear(width, height float64) {
	s.sb.Reset()
	s.width, s.height = width, height
	s.sb.WriteString(fmt.Sprintf(`<rect width="%.0f" height="%.0f" fill="%s"/>
`, width, height, svgBackground))
}

func (s *SVG) SetAlpha(a float64)          { s.alpha = a }
func (s *SVG) SetFillColor(c color.RGBA)   { s.fill = c }
func (s *SVG) SetStrokeColor(c color.RGBA) { s.stroke = c }

func (s *SVG) FillCircle(x, y, r float64) {
	s.sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, x, y, r, hex(s.fill), s.alpha))
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64) {
	s.sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.1f"/>
`, x0, y0, x1, y1, hex(s.stroke), s.alpha, width))
}

// String returns the complete document.
func (s *SVG) String() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
%s</svg>`, s.width, s.height, s.width, s.height, s.sb.String())
}

// FrameToSVG renders one frame at full vector fidelity.
func FrameToSVG(w io.Writer, frame field.Frame, prm field.Params) error {
	s := NewSVG()
	render.Replay(frame, s, prm)
	_, err := io.WriteString(w, s.String())
	return err
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FrameToBrailleSVG renders frame the way the terminal host shows it, at
// dotSize viewport pixels per Braille dot, and writes it as dots.
func FrameToBrailleSVG(w io.Writer, frame field.Frame, prm field.Params, dotSize float64) error {
	if dotSize <= 0 {
		dotSize = 1
	}
	cols := int(math.Ceil(frame.Bounds.Width / (2 * dotSize)))
	rows := int(math.Ceil(frame.Bounds.Height / (4 * dotSize)))
	canvas := render.NewCanvas(max(cols, 1), max(rows, 1))
	canvas.DotSize = dotSize
	render.Replay(frame, canvas, prm)
	_, err := io.WriteString(w, CanvasToSVG(canvas, dotSize))
	return err
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot,
// keeping each cell's colour.
func CanvasToSVG(canvas *render.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			if canvas.Grid[row][col] <= 0x2800 {
				continue
			}
			fill := hex(canvas.Colors[row][col])
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws a metric series as a polyline chart.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
