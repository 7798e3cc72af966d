package field

import "math"

// Attraction returns the positional nudge toward the pointer for a particle
// whose displacement to the pointer is (dx, dy). The force is
// (R - d)/R * strength applied to the raw displacement, and zero once d >= R.
// The displacement is never normalised, so d == 0 is an ordinary zero nudge.
func Attraction(dx, dy float64, prm Params) (float64, float64, bool) {
	force := AttractionForce(math.Sqrt(dx*dx+dy*dy), prm)
	if force == 0 {
		return 0, 0, false
	}
	return dx * force * prm.AttractStrength, dy * force * prm.AttractStrength, true
}

// AttractionForce is the pull strength at distance d: 1 on top of the pointer,
// falling linearly to 0 at AttractRadius and beyond.
func AttractionForce(d float64, prm Params) float64 {
	if d >= prm.AttractRadius {
		return 0
	}
	return (prm.AttractRadius - d) / prm.AttractRadius
}

// LinkAlpha returns the opacity of the line joining two particles d apart,
// and false when they are too far apart to be linked.
func LinkAlpha(d float64, prm Params) (float64, bool) {
	if d >= prm.LinkDistance {
		return 0, false
	}
	return (prm.LinkDistance - d) / prm.LinkDistance * prm.LineAlpha, true
}

// Step advances f by one tick and returns the commands to draw it.
//
// Particles are processed in collection order. Particle i is moved, attracted,
// reflected, clamped and drawn, then linked to every later particle j using
// j's position from the previous tick, since j has not moved yet.
// buf is reused for the command list when it has capacity.
func Step(f *Field, ptr Pointer, prm Params, buf []Command) Frame {
	b := f.Bounds
	n := len(f.Particles)
	frame := Frame{
		Bounds:   b,
		Commands: append(buf[:0], Command{Kind: CmdClear, X1: b.Width, Y1: b.Height}),
	}

	for i := 0; i < n; i++ {
		p := &f.Particles[i]

		p.X += p.VX
		p.Y += p.VY

		if ax, ay, ok := Attraction(ptr.X-p.X, ptr.Y-p.Y, prm); ok {
			p.X += ax
			p.Y += ay
			frame.Attracted++
		}

		if p.X < 0 || p.X > b.Width {
			p.VX = -p.VX
			frame.Bounces++
		}
		if p.Y < 0 || p.Y > b.Height {
			p.VY = -p.VY
			frame.Bounces++
		}

		p.X = math.Max(0, math.Min(b.Width, p.X))
		p.Y = math.Max(0, math.Min(b.Height, p.Y))

		frame.Commands = append(frame.Commands, Command{
			Kind:   CmdCircle,
			X0:     p.X,
			Y0:     p.Y,
			Radius: p.Radius,
			Alpha:  p.Opacity,
			Hue:    p.Hue,
		})
		frame.Circles++

		for j := i + 1; j < n; j++ {
			o := &f.Particles[j]
			dx := p.X - o.X
			dy := p.Y - o.Y
			alpha, ok := LinkAlpha(math.Sqrt(dx*dx+dy*dy), prm)
			if !ok {
				continue
			}
			frame.Commands = append(frame.Commands, Command{
				Kind:  CmdLine,
				X0:    p.X,
				Y0:    p.Y,
				X1:    o.X,
				Y1:    o.Y,
				Width: prm.LineWidth,
				Alpha: alpha,
				Hue:   p.Hue,
			})
			frame.Links++
		}
	}

	return frame
}
