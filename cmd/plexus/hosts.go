package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/fbdev"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/tui"
	"github.com/san-kum/plexus/internal/window"
)

var errUnknownBackend = errors.New("unknown backend")

type backendFunc func(scene *field.Scene, cfg *config.Config) error

var backends = map[string]struct {
	short string
	run   backendFunc
}{
	"tui":    {"run in the terminal (braille canvas)", runTUI},
	"gui":    {"run in a raylib window", runGUI},
	"window": {"run in an ebiten window", runWindow},
	"fb":     {"run full screen on the Linux framebuffer", runFB},
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runBackend builds a scene from cfg and hands it to the named host. A host
// without a drawing surface is reported as an error and a non-zero exit
// rather than skipped silently, so a misconfigured backend is visible.
func runBackend(name string, cfg *config.Config) error {
	b, ok := backends[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", errUnknownBackend, name, backendNames())
	}
	scene, err := newScene(cfg)
	if err != nil {
		return err
	}
	err = b.run(scene, cfg)
	if errors.Is(err, field.ErrNoSurface) {
		return fmt.Errorf("%s: no drawing surface available: %w", name, err)
	}
	return err
}

func runTUI(scene *field.Scene, cfg *config.Config) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	return tui.Run(scene, tui.Options{
		Theme:     cfg.Theme,
		FPS:       cfg.FPS,
		DotSize:   cfg.DotSize,
		Debounce:  cfg.Debounce,
		Captions:  cfg.Captions,
		Stats:     cfg.Stats,
		ExportDir: dataDir,
	})
}

func runGUI(scene *field.Scene, cfg *config.Config) error {
	return gui.Run(scene, gui.Options{
		Title:    "plexus",
		Width:    int(cfg.Width),
		Height:   int(cfg.Height),
		FPS:      cfg.FPS,
		Debounce: cfg.Debounce,
		Captions: cfg.Captions,
		Stats:    cfg.Stats,
	})
}

func runWindow(scene *field.Scene, cfg *config.Config) error {
	return window.Run(scene, window.Options{
		Title:    "plexus",
		Width:    int(cfg.Width),
		Height:   int(cfg.Height),
		FPS:      cfg.FPS,
		Debounce: cfg.Debounce,
		Captions: cfg.Captions,
		Stats:    cfg.Stats,
	})
}

func runFB(scene *field.Scene, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return fbdev.Run(ctx, scene, fbdev.Options{
		Device:      fbdev.DefaultDevice,
		Width:       int(cfg.Width),
		Height:      int(cfg.Height),
		FPS:         cfg.FPS,
		Captions:    cfg.Captions,
		Stats:       cfg.Stats,
		OrbitRadius: cfg.Record.OrbitRadius,
		OrbitPeriod: cfg.Record.OrbitPeriod,
		Graphics:    true,
	})
}
