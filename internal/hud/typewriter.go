// Package hud holds the text overlays drawn on top of the field: a
// typewriter caption and stat counters. Both are advanced by elapsed frame
// time so any host can drive them from its own loop.
package hud

import "time"

const (
	DefaultTypeDelay   = 100 * time.Millisecond
	DefaultDeleteDelay = 50 * time.Millisecond
	DefaultHold        = 2 * time.Second
	DefaultStartDelay  = time.Second
)

type phase int

const (
	phaseStart phase = iota
	phaseTyping
	phaseHolding
	phaseDeleting
)

// Typewriter types each text a rune at a time, holds it, deletes it and
// moves on to the next, wrapping around forever.
type Typewriter struct {
	Texts       [][]rune
	TypeDelay   time.Duration
	DeleteDelay time.Duration
	Hold        time.Duration

	index   int
	chars   int
	phase   phase
	pending time.Duration
}

func NewTypewriter(texts []string) *Typewriter {
	t := &Typewriter{
		TypeDelay:   DefaultTypeDelay,
		DeleteDelay: DefaultDeleteDelay,
		Hold:        DefaultHold,
		pending:     DefaultStartDelay,
	}
	for _, s := range texts {
		t.Texts = append(t.Texts, []rune(s))
	}
	return t
}

// Advance moves the caption forward by dt and returns the visible text.
func (t *Typewriter) Advance(dt time.Duration) string {
	if len(t.Texts) == 0 {
		return ""
	}
	t.pending -= dt
	for t.pending <= 0 {
		t.pending += t.step()
	}
	return t.Text()
}

// step performs one transition and returns the wait until the next one.
func (t *Typewriter) step() time.Duration {
	cur := t.Texts[t.index]
	switch t.phase {
	case phaseStart, phaseTyping:
		t.phase = phaseTyping
		if t.chars < len(cur) {
			t.chars++
		}
		if t.chars == len(cur) {
			t.phase = phaseHolding
			return t.Hold
		}
		return t.TypeDelay
	case phaseHolding:
		t.phase = phaseDeleting
		return t.step()
	default:
		if t.chars > 0 {
			t.chars--
		}
		if t.chars == 0 {
			t.phase = phaseTyping
			t.index = (t.index + 1) % len(t.Texts)
		}
		return t.DeleteDelay
	}
}

func (t *Typewriter) Text() string {
	if len(t.Texts) == 0 {
		return ""
	}
	return string(t.Texts[t.index][:t.chars])
}

// Index is the position of the text currently on screen.
func (t *Typewriter) Index() int { return t.index }
