package field

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewScene_InvalidBounds(t *testing.T) {
	_, err := NewScene(-1, 10, DefaultParams(), nil)
	if !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}

	var be *BoundsError
	if !errors.As(err, &be) || be.Width != -1 {
		t.Errorf("expected BoundsError with width -1, got %v", err)
	}
}

func TestScene_ResizeRegenerates(t *testing.T) {
	s, err := NewScene(600, 400, DefaultParams(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	first := s.Field()

	if err := s.Resize(600, 400); err != nil {
		t.Fatal(err)
	}
	second := s.Field()
	if err := s.Resize(600, 400); err != nil {
		t.Fatal(err)
	}
	third := s.Field()

	if first == second || second == third {
		t.Error("Resize with identical size must produce a fresh field")
	}
	for _, f := range []*Field{first, second, third} {
		if f.Len() != 30 {
			t.Errorf("expected 30 particles, got %d", f.Len())
		}
	}
	if second.Particles[0] == third.Particles[0] {
		t.Error("regenerated field reused particle state")
	}
	if s.Generation() != 3 {
		t.Errorf("Generation() = %d, want 3", s.Generation())
	}
}

func TestScene_ResizeChangesCount(t *testing.T) {
	s, _ := NewScene(1920, 1080, DefaultParams(), rand.New(rand.NewSource(5)))
	if s.Field().Len() != 50 {
		t.Fatalf("expected 50 particles, got %d", s.Field().Len())
	}

	if err := s.Resize(300, 200); err != nil {
		t.Fatal(err)
	}
	if s.Field().Len() != 15 {
		t.Errorf("expected 15 particles, got %d", s.Field().Len())
	}
	if s.Bounds() != (Bounds{Width: 300, Height: 200}) {
		t.Errorf("Bounds() = %+v", s.Bounds())
	}
}

func TestScene_ResizeRejectsInvalid(t *testing.T) {
	s, _ := NewScene(800, 600, DefaultParams(), rand.New(rand.NewSource(5)))
	before := s.Field()

	if err := s.Resize(800, -5); err == nil {
		t.Fatal("expected error for negative height")
	}
	if s.Field() != before {
		t.Error("failed resize must leave the field untouched")
	}
}

func TestScene_Tick(t *testing.T) {
	s, _ := NewScene(800, 600, DefaultParams(), rand.New(rand.NewSource(11)))
	s.MovePointer(400, 300)

	f1 := s.Tick()
	f2 := s.Tick()

	if f1.Tick != 1 || f2.Tick != 2 {
		t.Errorf("tick numbers = %d, %d", f1.Tick, f2.Tick)
	}
	if f2.Circles != s.Field().Len() {
		t.Errorf("Circles = %d, want %d", f2.Circles, s.Field().Len())
	}
	if s.Pointer() != (Pointer{X: 400, Y: 300}) {
		t.Errorf("Pointer() = %+v", s.Pointer())
	}
}

func TestScene_EmptyViewport(t *testing.T) {
	s, err := NewScene(10, 10, DefaultParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	frame := s.Tick()
	if len(frame.Commands) != 1 || frame.Commands[0].Kind != CmdClear {
		t.Errorf("empty field should only clear, got %d commands", len(frame.Commands))
	}
}
