package field

import (
	"math/rand"
	"time"
)

// Scene is the explicit context a host drives: current bounds, last pointer
// position and the live field.
type Scene struct {
	params     Params
	field      *Field
	pointer    Pointer
	rng        *rand.Rand
	tick       uint64
	generation int
	buf        []Command
}

// NewScene validates the viewport and draws the first field. A nil rng is
// replaced by a time-seeded source.
func NewScene(width, height float64, prm Params, rng *rand.Rand) (*Scene, error) {
	b := Bounds{Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Scene{
		params: prm,
		rng:    rng,
	}
	s.regenerate(b)
	return s, nil
}

func (s *Scene) regenerate(b Bounds) {
	s.field = NewField(b, s.params, s.rng)
	s.generation++
}

// Resize replaces the field with a fresh one for the new viewport. It always
// regenerates, even when the size is unchanged.
func (s *Scene) Resize(width, height float64) error {
	b := Bounds{Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return err
	}
	s.regenerate(b)
	return nil
}

// Reseed regenerates the field for the current bounds.
func (s *Scene) Reseed() {
	s.regenerate(s.field.Bounds)
}

func (s *Scene) MovePointer(x, y float64) {
	s.pointer = Pointer{X: x, Y: y}
}

// Tick runs one update-and-draw step. The returned frame's command slice is
// reused by the next Tick; copy it if it must outlive that call.
func (s *Scene) Tick() Frame {
	frame := Step(s.field, s.pointer, s.params, s.buf)
	s.buf = frame.Commands
	s.tick++
	frame.Tick = s.tick
	return frame
}

func (s *Scene) Field() *Field    { return s.field }
func (s *Scene) Bounds() Bounds   { return s.field.Bounds }
func (s *Scene) Pointer() Pointer { return s.pointer }
func (s *Scene) Params() Params   { return s.params }
func (s *Scene) Ticks() uint64    { return s.tick }
func (s *Scene) Generation() int  { return s.generation }
