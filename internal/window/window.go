// Package window hosts the field in an ebiten window. The logical screen
// always matches the window's outside size, so one field pixel is one
// device-independent pixel.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/host"
	"github.com/san-kum/plexus/internal/hud"
	"github.com/san-kum/plexus/internal/render"
)

var background = color.RGBA{R: 10, G: 10, B: 10, A: 255}

type Options struct {
	Title    string
	Width    int
	Height   int
	FPS      int
	Debounce time.Duration
	Captions []string
	Stats    []hud.Stat
}

// surface wraps the ebiten screen for one Draw call.
type surface struct {
	dst    *ebiten.Image
	alpha  float64
	fill   color.RGBA
	stroke color.RGBA
}

func withAlpha(c color.RGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a * 255)}
}

func (s *surface) Clear(width, height float64) { s.dst.Fill(background) }

func (s *surface) SetAlpha(a float64)          { s.alpha = a }
func (s *surface) SetFillColor(c color.RGBA)   { s.fill = c }
func (s *surface) SetStrokeColor(c color.RGBA) { s.stroke = c }

func (s *surface) FillCircle(x, y, r float64) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), withAlpha(s.fill, s.alpha), true)
}

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), withAlpha(s.stroke, s.alpha), true)
}

type game struct {
	scene   *field.Scene
	opts    Options
	surface *surface
	resize  *host.Debouncer

	frame    field.Frame
	running  bool
	showHUD  bool
	caption  *hud.Typewriter
	counters []*hud.Counter

	outW, outH int
}

func newGame(scene *field.Scene, opts Options) *game {
	return &game{
		scene:    scene,
		opts:     opts,
		surface:  &surface{alpha: 1},
		resize:   host.NewDebouncer(opts.Debounce),
		running:  true,
		showHUD:  true,
		caption:  hud.NewTypewriter(opts.Captions),
		counters: hud.NewCounters(opts.Stats),
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.Reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	if b, ok := g.resize.Due(time.Now()); ok {
		if err := g.scene.Resize(b.Width, b.Height); err != nil {
			log.Printf("window: resize: %v", err)
		}
	}

	x, y := ebiten.CursorPosition()
	g.scene.MovePointer(float64(x), float64(y))

	dt := time.Second / time.Duration(ebiten.TPS())
	g.caption.Advance(dt)
	for _, c := range g.counters {
		c.Advance(dt)
	}

	if g.running {
		g.frame = g.scene.Tick()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame.Tick == 0 {
		screen.Fill(background)
	} else {
		g.surface.dst = screen
		render.Replay(g.frame, g.surface, g.scene.Params())
		g.surface.dst = nil
	}
	if !g.showHUD {
		return
	}

	ebitenutil.DebugPrintAt(screen, g.caption.Text()+"_", 24, 24)
	x := 24
	for _, c := range g.counters {
		ebitenutil.DebugPrintAt(screen, c.Text()+" "+c.Label, x, 44)
		x += 120
	}
	status := fmt.Sprintf("%.0f FPS  %d particles  %d links  [space] pause [r] reseed [h] hud [q] quit",
		ebiten.ActualFPS(), g.scene.Field().Len(), g.frame.Links)
	ebitenutil.DebugPrintAt(screen, status, 24, g.outH-24)
}

// Layout keeps the logical screen equal to the window. A change of outside
// size schedules a debounced field regeneration.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		g.outW, g.outH = outsideWidth, outsideHeight
		b := g.scene.Bounds()
		if float64(outsideWidth) != b.Width || float64(outsideHeight) != b.Height {
			g.resize.Request(float64(outsideWidth), float64(outsideHeight), time.Now())
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it closes. A failure to create the
// window is reported as field.ErrNoSurface.
func Run(scene *field.Scene, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}

	err := ebiten.RunGame(newGame(scene, opts))
	if err == nil || errors.Is(err, ebiten.Termination) {
		return nil
	}
	return fmt.Errorf("%w: %v", field.ErrNoSurface, err)
}
