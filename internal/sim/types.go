package sim

import (
	"math"

	"github.com/san-kum/plexus/internal/field"
)

// Observer sees every frame a Simulator produces, after metrics.
type Observer interface {
	OnFrame(frame field.Frame, f *field.Field) error
}

// PointerPath scripts the pointer for headless runs.
type PointerPath interface {
	At(tick int, b field.Bounds) (field.Pointer, bool)
}

// Orbit circles the viewport centre once every Period ticks.
type Orbit struct {
	Radius float64
	Period int
}

func (o Orbit) At(tick int, b field.Bounds) (field.Pointer, bool) {
	if o.Period <= 0 {
		return field.Pointer{}, false
	}
	angle := 2 * math.Pi * float64(tick%o.Period) / float64(o.Period)
	return field.Pointer{
		X: b.Width/2 + o.Radius*math.Cos(angle),
		Y: b.Height/2 + o.Radius*math.Sin(angle),
	}, true
}

// Still leaves the pointer wherever it is.
type Still struct{}

func (Still) At(int, field.Bounds) (field.Pointer, bool) { return field.Pointer{}, false }

type Config struct {
	Ticks int
	Path  PointerPath
	// ValidateBounds checks the position invariant after every tick.
	ValidateBounds bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:          600,
		Path:           Still{},
		ValidateBounds: true,
	}
}

// FrameStats is the per-tick summary kept in a Result.
type FrameStats struct {
	Tick      uint64
	Particles int
	Links     int
	Attracted int
	Bounces   int
	MeanSpeed float64
	PointerX  float64
	PointerY  float64
}

type Result struct {
	Frames     []FrameStats
	Metrics    map[string]float64
	TicksTaken int
	Errors     []error
}
