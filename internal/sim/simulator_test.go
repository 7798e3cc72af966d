package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
)

func newScene(t *testing.T) *field.Scene {
	t.Helper()
	s, err := field.NewScene(800, 600, field.DefaultParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSimulatorRun(t *testing.T) {
	s := New(newScene(t))
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	result, err := s.Run(context.Background(), Config{Ticks: 120, Path: Orbit{Radius: 100, Period: 60}, ValidateBounds: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.TicksTaken != 120 || len(result.Frames) != 120 {
		t.Errorf("expected 120 frames, got %d/%d", result.TicksTaken, len(result.Frames))
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if result.Frames[0].Particles != 40 {
		t.Errorf("expected 40 particles, got %d", result.Frames[0].Particles)
	}
	if _, ok := result.Metrics["links"]; !ok {
		t.Error("links metric missing")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(newScene(t))
	for _, ticks := range []int{0, -5} {
		if _, err := s.Run(context.Background(), Config{Ticks: ticks}); err == nil {
			t.Errorf("ticks=%d: expected error, got nil", ticks)
		}
	}
}

func TestSimulatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(newScene(t)).Run(ctx, Config{Ticks: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.TicksTaken != 0 {
		t.Errorf("expected no ticks, got %d", result.TicksTaken)
	}
}

type countingObserver struct {
	frames int
	failAt int
}

func (c *countingObserver) OnFrame(frame field.Frame, f *field.Field) error {
	c.frames++
	if c.frames == c.failAt {
		return errors.New("disk full")
	}
	return nil
}

func TestSimulatorObservers(t *testing.T) {
	s := New(newScene(t))
	obs := &countingObserver{}
	s.AddObserver(obs)

	if _, err := s.Run(context.Background(), Config{Ticks: 15}); err != nil {
		t.Fatal(err)
	}
	if obs.frames != 15 {
		t.Errorf("expected 15 observations, got %d", obs.frames)
	}

	failing := New(newScene(t))
	failing.AddObserver(&countingObserver{failAt: 3})
	if _, err := failing.Run(context.Background(), Config{Ticks: 15}); err == nil {
		t.Error("expected observer error to stop the run")
	}
}

func TestOrbit(t *testing.T) {
	b := field.Bounds{Width: 400, Height: 200}
	o := Orbit{Radius: 50, Period: 4}

	p, ok := o.At(0, b)
	if !ok || p.X != 250 || p.Y != 100 {
		t.Errorf("At(0) = %+v", p)
	}
	p, _ = o.At(1, b)
	if math.Abs(p.X-200) > 1e-9 || math.Abs(p.Y-150) > 1e-9 {
		t.Errorf("At(1) = %+v", p)
	}
	if _, ok := (Orbit{}).At(0, b); ok {
		t.Error("zero period orbit should not move the pointer")
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Tick: 150, Message: "test error"}
	expected := "tick 150: test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
