// Package raster draws field frames into an *image.RGBA with anti-aliased
// coverage from golang.org/x/image/vector.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Background is the default clear colour for files and framebuffers.
var Background = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}

// Surface implements render.Surface over an RGBA image. Clear resizes the
// backing image when the viewport size changes.
type Surface struct {
	Img        *image.RGBA
	Background color.RGBA

	z      *vector.Rasterizer
	alpha  float64
	fill   color.RGBA
	stroke color.RGBA
}

func New(width, height int) *Surface {
	return &Surface{
		Img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		Background: Background,
		z:          vector.NewRasterizer(width, height),
		alpha:      1,
	}
}

func (s *Surface) Clear(width, height float64) {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if b := s.Img.Bounds(); b.Dx() != w || b.Dy() != h {
		s.Img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
}

func (s *Surface) SetAlpha(a float64)          { s.alpha = a }
func (s *Surface) SetFillColor(c color.RGBA)   { s.fill = c }
func (s *Surface) SetStrokeColor(c color.RGBA) { s.stroke = c }

func (s *Surface) FillCircle(x, y, r float64) {
	if r <= 0 {
		return
	}
	z := s.begin()
	cx, cy, rr := float32(x), float32(y), float32(r)
	k := float32(kappa) * rr

	z.MoveTo(cx+rr, cy)
	z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	z.ClosePath()

	s.paint(s.fill)
}

// StrokeLine fills the width-wide quad around the segment.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	z := s.begin()
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()

	s.paint(s.stroke)
}

func (s *Surface) begin() *vector.Rasterizer {
	b := s.Img.Bounds()
	if s.z == nil {
		s.z = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		s.z.Reset(b.Dx(), b.Dy())
	}
	s.z.DrawOp = draw.Over
	return s.z
}

func (s *Surface) paint(c color.RGBA) {
	a := s.alpha
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))})
	s.z.Draw(s.Img, s.Img.Bounds(), src, image.Point{})
}
