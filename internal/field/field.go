package field

import (
	"math"
	"math/rand"
)

// Field is the ordered collection of live particles for one viewport size.
// It is replaced, never resized, when the viewport changes.
type Field struct {
	Particles []Particle
	Bounds    Bounds
}

// Size returns the particle count for a viewport of the given width:
// min(MaxParticles, floor(width / Spacing)).
func Size(width float64, prm Params) int {
	if width <= 0 || prm.Spacing <= 0 {
		return 0
	}
	n := int(math.Floor(width / prm.Spacing))
	if n > prm.MaxParticles {
		n = prm.MaxParticles
	}
	if n < 0 {
		n = 0
	}
	return n
}

// NewField draws a fresh field for b. Every particle field comes from an
// independent uniform draw on rng.
func NewField(b Bounds, prm Params, rng *rand.Rand) *Field {
	n := Size(b.Width, prm)
	f := &Field{
		Particles: make([]Particle, n),
		Bounds:    b,
	}
	for i := range f.Particles {
		f.Particles[i] = newParticle(b, prm, rng)
	}
	return f
}

func (f *Field) Len() int { return len(f.Particles) }

// InBounds reports whether every particle satisfies the position invariant.
func (f *Field) InBounds() bool {
	for _, p := range f.Particles {
		if !f.Bounds.Contains(p.X, p.Y) {
			return false
		}
	}
	return true
}

// MeanSpeed is the average velocity magnitude, 0 for an empty field.
func (f *Field) MeanSpeed() float64 {
	if len(f.Particles) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range f.Particles {
		sum += p.Speed()
	}
	return sum / float64(len(f.Particles))
}
