package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/render/raster"
)

// GIFRecorder is a sim.Observer that rasterizes every Every-th frame into
// an animation.
type GIFRecorder struct {
	Params field.Params
	Every  int
	// Delay per frame in 100ths of a second.
	Delay int

	surface *raster.Surface
	// size is fixed by the first recorded frame; later frames are cropped
	// or padded to it.
	size image.Rectangle
	anim gif.GIF
	seen int
}

func NewGIFRecorder(prm field.Params, every int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	return &GIFRecorder{
		Params: prm,
		Every:  every,
		Delay:  2 * every,
		anim:   gif.GIF{LoopCount: 0},
	}
}

func (g *GIFRecorder) OnFrame(frame field.Frame, _ *field.Field) error {
	g.seen++
	if (g.seen-1)%g.Every != 0 {
		return nil
	}

	if g.surface == nil {
		w, h := int(frame.Bounds.Width), int(frame.Bounds.Height)
		g.surface = raster.New(w, h)
		g.size = image.Rect(0, 0, max(w, 1), max(h, 1))
	}
	render.Replay(frame, g.surface, g.Params)

	src := g.surface.Img
	img := image.NewPaletted(g.size, palette.Plan9)
	draw.Draw(img, g.size, image.NewUniform(g.surface.Background), image.Point{}, draw.Src)
	draw.Draw(img, g.size, src, src.Bounds().Min, draw.Src)

	g.anim.Image = append(g.anim.Image, img)
	g.anim.Delay = append(g.anim.Delay, g.Delay)
	return nil
}

func (g *GIFRecorder) Len() int { return len(g.anim.Image) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &g.anim)
}
