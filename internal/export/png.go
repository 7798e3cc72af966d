package export

import (
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/render/raster"
)

var captionColor = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}

// FrameToPNG rasterizes a frame and draws caption near the bottom-left
// corner when it is non-empty.
func FrameToPNG(w io.Writer, frame field.Frame, prm field.Params, caption string) error {
	s := raster.New(int(frame.Bounds.Width), int(frame.Bounds.Height))
	render.Replay(frame, s, prm)

	if caption != "" {
		b := s.Img.Bounds()
		size := float64(b.Dy()) / 20
		if size < 12 {
			size = 12
		}
		if err := raster.Caption(s.Img, caption, int(size), b.Dy()-int(size), size, captionColor); err != nil {
			return err
		}
	}

	return png.Encode(w, s.Img)
}
