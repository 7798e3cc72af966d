// Package host drives a field.Scene from a clock on its own goroutine.
//
// Hosts whose input arrives on other goroutines (the framebuffer kiosk, file
// recorders) post pointer moves and resizes to the Loop; the loop drains
// them before every tick, so each frame sees every event posted before it.
package host

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/san-kum/plexus/internal/field"
)

const (
	DefaultFPS      = 60
	DefaultDebounce = 250 * time.Millisecond
	eventBuffer     = 64
)

type Options struct {
	FPS int
	// Debounce delays Scene.Resize until resize events have been quiet this
	// long. Zero resizes on the next tick.
	Debounce time.Duration
	// Clock overrides the ticker; tests feed it by hand.
	Clock <-chan time.Time
}

func DefaultOptions() Options {
	return Options{FPS: DefaultFPS, Debounce: DefaultDebounce}
}

// Loop owns a Scene and ticks it until stopped or cancelled.
type Loop struct {
	scene *field.Scene
	opts  Options

	pointer chan field.Pointer
	resize  chan field.Bounds
	stopped atomic.Bool

	debounce *Debouncer
	frames   atomic.Uint64
}

func NewLoop(scene *field.Scene, opts Options) *Loop {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	return &Loop{
		scene:    scene,
		opts:     opts,
		pointer:  make(chan field.Pointer, eventBuffer),
		resize:   make(chan field.Bounds, eventBuffer),
		debounce: NewDebouncer(opts.Debounce),
	}
}

// MovePointer posts a pointer position. It never blocks; when the queue is
// full the oldest move is dropped.
func (l *Loop) MovePointer(x, y float64) {
	post(l.pointer, field.Pointer{X: x, Y: y})
}

// Resize posts a viewport change.
func (l *Loop) Resize(width, height float64) {
	post(l.resize, field.Bounds{Width: width, Height: height})
}

func post[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Stop makes Run return field.ErrStopped before the next frame is scheduled.
func (l *Loop) Stop() { l.stopped.Store(true) }

func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Run ticks the scene and hands each frame to sink. It returns ctx.Err() on
// cancellation, field.ErrStopped after Stop, or the first sink error.
func (l *Loop) Run(ctx context.Context, sink func(field.Frame) error) error {
	clock := l.opts.Clock
	if clock == nil {
		ticker := time.NewTicker(time.Second / time.Duration(l.opts.FPS))
		defer ticker.Stop()
		clock = ticker.C
	}

	for {
		if l.stopped.Load() {
			return field.ErrStopped
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-clock:
			l.drain(now)
			if l.stopped.Load() {
				return field.ErrStopped
			}
			frame := l.scene.Tick()
			l.frames.Add(1)
			if err := sink(frame); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) drain(now time.Time) {
	for {
		select {
		case p := <-l.pointer:
			l.scene.MovePointer(p.X, p.Y)
			continue
		case b := <-l.resize:
			l.debounce.Request(b.Width, b.Height, now)
			continue
		default:
		}
		break
	}

	b, ok := l.debounce.Due(now)
	if !ok {
		return
	}
	if err := l.scene.Resize(b.Width, b.Height); err != nil {
		log.Printf("host: resize ignored: %v", err)
		return
	}
	log.Printf("host: resized to %gx%g, %d particles", b.Width, b.Height, l.scene.Field().Len())
}
