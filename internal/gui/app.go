// Package gui hosts the field in a resizable raylib window.
package gui

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/host"
	"github.com/san-kum/plexus/internal/hud"
	"github.com/san-kum/plexus/internal/render"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const telemetryCapacity = 200

type Options struct {
	Title    string
	Width    int
	Height   int
	FPS      int
	Debounce time.Duration
	Captions []string
	Stats    []hud.Stat
}

type App struct {
	Scene   *field.Scene
	Opts    Options
	Running bool
	ShowHUD bool
	Font    rl.Font

	surface   *surface
	caption   *hud.Typewriter
	counters  []*hud.Counter
	telemetry []float64
	frame     field.Frame
	resize    *host.Debouncer
}

func NewApp(scene *field.Scene, opts Options) *App {
	return &App{
		Scene:     scene,
		Opts:      opts,
		Running:   true,
		ShowHUD:   true,
		Font:      rl.GetFontDefault(),
		surface:   &surface{bg: ColBg, alpha: 1},
		caption:   hud.NewTypewriter(opts.Captions),
		counters:  hud.NewCounters(opts.Stats),
		telemetry: make([]float64, 0, telemetryCapacity),
		resize:    host.NewDebouncer(opts.Debounce),
	}
}

// Run opens the window and blocks until it is closed. It returns
// field.ErrNoSurface when no window could be created.
func Run(scene *field.Scene, opts Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return field.ErrNoSurface
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	b := scene.Bounds()
	if w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()); w != b.Width || h != b.Height {
		if err := scene.Resize(w, h); err != nil {
			return err
		}
	}

	app := NewApp(scene, opts)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances the scene; false means quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Scene.Reseed()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	now := time.Now()
	if rl.IsWindowResized() {
		a.resize.Request(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), now)
	}
	if b, ok := a.resize.Due(now); ok {
		if err := a.Scene.Resize(b.Width, b.Height); err != nil {
			log.Printf("gui: resize: %v", err)
		}
	}

	mouse := rl.GetMousePosition()
	a.Scene.MovePointer(float64(mouse.X), float64(mouse.Y))

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.caption.Advance(dt)
	for _, c := range a.counters {
		c.Advance(dt)
	}

	if a.Running {
		a.frame = a.Scene.Tick()
		a.telemetry = append(a.telemetry, float64(a.frame.Links))
		if len(a.telemetry) > telemetryCapacity {
			a.telemetry = a.telemetry[1:]
		}
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	if a.frame.Tick == 0 {
		rl.ClearBackground(ColBg)
	} else {
		render.Replay(a.frame, a.surface, a.Scene.Params())
	}
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())

	a.drawText("plexus", 30, 30, 24, ColSelect)
	a.drawText(a.caption.Text()+"_", 30, 62, 20, ColAccent)

	x := 30
	for _, c := range a.counters {
		a.drawText(c.Text(), x, 96, 20, ColSelect)
		a.drawText(c.Label, x, 118, 12, ColText)
		x += 110
	}

	a.DrawTelemetry(30, h-110, 300, 50)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)
	a.drawText(fmt.Sprintf("%d FPS  %d particles  %d links", int32(rl.GetFPS()), a.Scene.Field().Len(), a.frame.Links), 30, h-40, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [R] RESEED  [H] HUD  [Q] QUIT", w-420, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the recent link counts as a line strip.
func (a *App) DrawTelemetry(rectX, rectY, width, height int) {
	if len(a.telemetry) < 2 {
		return
	}

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("links %.0f", a.telemetry[len(a.telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
