package field

import (
	"math"
	"math/rand"
)

// Particle is one drifting dot. Radius, Opacity and Hue never change after
// creation.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Hue     float64
}

// Speed returns the velocity magnitude in pixels per tick.
func (p Particle) Speed() float64 {
	return math.Sqrt(p.VX*p.VX + p.VY*p.VY)
}

func newParticle(b Bounds, prm Params, rng *rand.Rand) Particle {
	return Particle{
		X:       rng.Float64() * b.Width,
		Y:       rng.Float64() * b.Height,
		VX:      (rng.Float64() - 0.5) * prm.Speed,
		VY:      (rng.Float64() - 0.5) * prm.Speed,
		Radius:  rng.Float64()*prm.RadiusSpan + prm.RadiusMin,
		Opacity: rng.Float64()*prm.OpacitySpan + prm.OpacityMin,
		Hue:     rng.Float64()*prm.HueSpan + prm.HueMin,
	}
}

// Bounds is the viewport size in pixels.
type Bounds struct {
	Width, Height float64
}

func (b Bounds) Validate() error {
	if b.Width < 0 || b.Height < 0 || math.IsNaN(b.Width) || math.IsNaN(b.Height) ||
		math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		return &BoundsError{Width: b.Width, Height: b.Height}
	}
	return nil
}

// Contains reports whether (x, y) lies in the closed rectangle [0,W]x[0,H].
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Pointer is the last known pointer position in viewport pixels.
type Pointer struct {
	X, Y float64
}
