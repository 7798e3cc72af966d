package field

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color maps a particle hue to its opaque fill colour, hsl(hue, S, L).
// Hues above 360 wrap, so the 330-390 band runs red-pink through red.
func Color(hue float64, prm Params) color.RGBA {
	h := math.Mod(hue+prm.HueShift, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, prm.Saturation, prm.Lightness).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
