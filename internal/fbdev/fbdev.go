// Package fbdev runs the field full screen on a Linux framebuffer console,
// for kiosks with no display server. Frames are rasterized at the logical
// viewport size and scaled to the device with nearest-neighbour sampling.
package fbdev

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/plexus/internal/hud"
)

const DefaultDevice = "/dev/fb0"

type Options struct {
	Device   string
	Width    int
	Height   int
	FPS      int
	Captions []string
	Stats    []hud.Stat
	// OrbitRadius and OrbitPeriod script the pointer, since a kiosk has no
	// mouse. A zero period leaves the pointer at the origin.
	OrbitRadius float64
	OrbitPeriod int
	// Graphics switches the console to KD_GRAPHICS to hide the text cursor.
	Graphics bool
}

var captionColor = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}

// blit copies src onto dst scaled to dst's bounds.
func blit(dst draw.Image, src *image.RGBA) {
	db := dst.Bounds()
	sb := src.Bounds()
	dw, dh := db.Dx(), db.Dy()
	sw, sh := sb.Dx(), sb.Dy()
	if dw == 0 || dh == 0 || sw == 0 || sh == 0 {
		return
	}
	for y := 0; y < dh; y++ {
		sy := sb.Min.Y + (y*sh)/dh
		for x := 0; x < dw; x++ {
			sx := sb.Min.X + (x*sw)/dw
			p := src.RGBAAt(sx, sy)
			dst.Set(db.Min.X+x, db.Min.Y+y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
}
