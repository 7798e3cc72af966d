package fbdev

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/plexus/internal/field"
)

func TestBlit_ScalesNearestNeighbour(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, blue)
	src.SetRGBA(0, 1, blue)
	src.SetRGBA(1, 1, red)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	blit(dst, src)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red},
		{1, 1, red},
		{2, 0, blue},
		{3, 1, blue},
		{0, 3, blue},
		{3, 3, red},
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBlit_ForcesOpaque(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 10, A: 20})
	dst := image.NewRGBA(image.Rect(0, 0, 3, 2))
	blit(dst, src)
	if dst.RGBAAt(2, 1).A != 0xff {
		t.Error("expected opaque output")
	}
}

func TestBlit_EmptyIsNoop(t *testing.T) {
	blit(image.NewRGBA(image.Rect(0, 0, 0, 0)), image.NewRGBA(image.Rect(0, 0, 2, 2)))
}

func TestRun_MissingDevice(t *testing.T) {
	scene, err := field.NewScene(320, 240, field.DefaultParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = Run(ctx, scene, Options{Device: "/nonexistent/fb", Width: 320, Height: 240, FPS: 30})
	if !errors.Is(err, field.ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}
	if scene.Ticks() != 0 {
		t.Errorf("no frame should run without a surface, got %d ticks", scene.Ticks())
	}
}
