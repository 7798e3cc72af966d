// Package metrics summarises a run of frames into scalar values.
package metrics

import "github.com/san-kum/plexus/internal/field"

type Metric interface {
	Name() string
	Observe(frame field.Frame, f *field.Field)
	Value() float64
	Reset()
}

// mean averages one sample per observed frame.
type mean struct {
	name    string
	sample  func(frame field.Frame, f *field.Field) (float64, bool)
	sum     float64
	samples int
}

func (m *mean) Name() string { return m.name }

func (m *mean) Observe(frame field.Frame, f *field.Field) {
	v, ok := m.sample(frame, f)
	if !ok {
		return
	}
	m.sum += v
	m.samples++
}

func (m *mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// NewLinks averages the number of proximity lines per frame.
func NewLinks() Metric {
	return &mean{name: "links", sample: func(frame field.Frame, _ *field.Field) (float64, bool) {
		return float64(frame.Links), true
	}}
}

// NewMeanSpeed averages the field's mean particle speed.
func NewMeanSpeed() Metric {
	return &mean{name: "mean_speed", sample: func(_ field.Frame, f *field.Field) (float64, bool) {
		if f == nil {
			return 0, false
		}
		return f.MeanSpeed(), true
	}}
}

// NewAttracted averages the fraction of particles inside the pointer's pull.
func NewAttracted() Metric {
	return &mean{name: "attracted", sample: func(frame field.Frame, _ *field.Field) (float64, bool) {
		if frame.Circles == 0 {
			return 0, false
		}
		return float64(frame.Attracted) / float64(frame.Circles), true
	}}
}

// NewBounces averages edge reflections per frame.
func NewBounces() Metric {
	return &mean{name: "bounces", sample: func(frame field.Frame, _ *field.Field) (float64, bool) {
		return float64(frame.Bounces), true
	}}
}

// PeakLinks tracks the largest link count seen.
type PeakLinks struct {
	peak int
}

func NewPeakLinks() *PeakLinks { return &PeakLinks{} }

func (p *PeakLinks) Name() string { return "peak_links" }

func (p *PeakLinks) Observe(frame field.Frame, _ *field.Field) {
	if frame.Links > p.peak {
		p.peak = frame.Links
	}
}

func (p *PeakLinks) Value() float64 { return float64(p.peak) }
func (p *PeakLinks) Reset()         { p.peak = 0 }

// Default returns the metric set recorded for every run.
func Default() []Metric {
	return []Metric{NewLinks(), NewPeakLinks(), NewMeanSpeed(), NewAttracted(), NewBounces()}
}

// Collect reads every metric into a name -> value map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
