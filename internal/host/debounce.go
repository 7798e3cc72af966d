package host

import (
	"time"

	"github.com/san-kum/plexus/internal/field"
)

// Debouncer coalesces bursts of resize events into one, released once the
// burst has been quiet for Delay. It is not safe for concurrent use.
type Debouncer struct {
	Delay time.Duration

	pending *field.Bounds
	at      time.Time
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{Delay: delay}
}

// Request records a size seen at now, replacing any earlier pending size.
func (d *Debouncer) Request(width, height float64, now time.Time) {
	d.pending = &field.Bounds{Width: width, Height: height}
	d.at = now
}

// Due returns the pending size once it has waited Delay, and clears it.
func (d *Debouncer) Due(now time.Time) (field.Bounds, bool) {
	if d.pending == nil || now.Sub(d.at) < d.Delay {
		return field.Bounds{}, false
	}
	b := *d.pending
	d.pending = nil
	return b, true
}

func (d *Debouncer) Pending() bool { return d.pending != nil }
