package raster

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	ttFont   *truetype.Font
	fontErr  error
)

func captionFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		ttFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return ttFont, fontErr
}

// Caption draws text with its baseline at (x, y) using the embedded Go font.
func Caption(dst *image.RGBA, text string, x, y int, size float64, c color.Color) error {
	f, err := captionFont()
	if err != nil {
		return fmt.Errorf("parse caption font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))

	if _, err := ctx.DrawString(text, freetype.Pt(x, y)); err != nil {
		return fmt.Errorf("draw caption: %w", err)
	}
	return nil
}
