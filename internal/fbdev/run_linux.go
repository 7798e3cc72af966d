//go:build linux

package fbdev

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/host"
	"github.com/san-kum/plexus/internal/hud"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/render/raster"
	"github.com/san-kum/plexus/internal/sim"
)

// Run opens the framebuffer and renders until ctx is cancelled. A missing or
// unusable device is reported as field.ErrNoSurface and nothing is retried.
func Run(ctx context.Context, scene *field.Scene, opts Options) error {
	if opts.Device == "" {
		opts.Device = DefaultDevice
	}
	dev, err := fb.Open(opts.Device)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", field.ErrNoSurface, opts.Device, err)
	}
	defer dev.Close()
	b := dev.Bounds()
	log.Printf("fbdev: %s open, bounds=%dx%d", opts.Device, b.Dx(), b.Dy())

	if opts.Graphics {
		if err := setGraphicsMode(); err != nil {
			log.Printf("fbdev: %v", err)
		} else {
			defer func() {
				if err := restoreTextMode(); err != nil {
					log.Printf("fbdev: %v", err)
				}
			}()
		}
	}

	loop := host.NewLoop(scene, host.Options{FPS: opts.FPS})
	surface := raster.New(opts.Width, opts.Height)
	caption := hud.NewTypewriter(opts.Captions)
	counters := hud.NewCounters(opts.Stats)
	orbit := sim.Orbit{Radius: opts.OrbitRadius, Period: opts.OrbitPeriod}
	prm := scene.Params()
	bounds := scene.Bounds()

	tick := 0
	last := time.Now()
	sink := func(frame field.Frame) error {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		render.Replay(frame, surface, prm)
		if err := raster.Caption(surface.Img, caption.Advance(dt), 32, 64, 28, captionColor); err != nil {
			return err
		}
		x := 32
		for _, c := range counters {
			if err := raster.Caption(surface.Img, c.Advance(dt)+" "+c.Label, x, 104, 18, captionColor); err != nil {
				return err
			}
			x += 160
		}
		blit(dev, surface.Img)

		// the pointer for the next frame; the loop drains it before ticking
		tick++
		if p, ok := orbit.At(tick, bounds); ok {
			loop.MovePointer(p.X, p.Y)
		}
		return nil
	}

	err = loop.Run(ctx, sink)
	if errors.Is(err, context.Canceled) || errors.Is(err, field.ErrStopped) {
		return nil
	}
	return err
}
