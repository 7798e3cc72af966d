package hud

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestTypewriter_StartDelay(t *testing.T) {
	tw := NewTypewriter([]string{"Go"})
	if got := tw.Advance(999 * time.Millisecond); got != "" {
		t.Errorf("expected empty before start delay, got %q", got)
	}
	if got := tw.Advance(time.Millisecond); got != "G" {
		t.Errorf("expected first rune at 1s, got %q", got)
	}
	if got := tw.Advance(100 * time.Millisecond); got != "Go" {
		t.Errorf("expected full text, got %q", got)
	}
}

func TestTypewriter_Cycle(t *testing.T) {
	g := NewWithT(t)
	tw := NewTypewriter([]string{"ab", "xyz"})

	g.Expect(tw.Advance(time.Second)).To(Equal("a"))
	g.Expect(tw.Advance(100 * time.Millisecond)).To(Equal("ab"))

	// held for two seconds
	g.Expect(tw.Advance(1999 * time.Millisecond)).To(Equal("ab"))
	g.Expect(tw.Advance(time.Millisecond)).To(Equal("a"))
	g.Expect(tw.Advance(50 * time.Millisecond)).To(Equal(""))
	g.Expect(tw.Index()).To(Equal(1))

	g.Expect(tw.Advance(50 * time.Millisecond)).To(Equal("x"))
	g.Expect(tw.Advance(200 * time.Millisecond)).To(Equal("xyz"))
}

func TestTypewriter_Wraps(t *testing.T) {
	tw := NewTypewriter([]string{"a", "b"})
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		tw.Advance(50 * time.Millisecond)
		seen[tw.Index()] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("expected both texts shown, saw %v", seen)
	}
}

func TestTypewriter_Runes(t *testing.T) {
	tw := NewTypewriter([]string{"☕x"})
	if got := tw.Advance(time.Second); got != "☕" {
		t.Errorf("expected whole rune, got %q", got)
	}
}

func TestTypewriter_Empty(t *testing.T) {
	if NewTypewriter(nil).Advance(time.Hour) != "" {
		t.Error("expected empty text")
	}
}

func TestCounter_StepAndInterval(t *testing.T) {
	tests := []struct {
		target   int
		step     int
		interval time.Duration
	}{
		{target: 15, step: 1, interval: 133 * time.Millisecond},
		{target: 24, step: 1, interval: 83 * time.Millisecond},
		{target: 100, step: 2, interval: 20 * time.Millisecond},
		{target: 5000, step: 100, interval: time.Millisecond},
	}

	for _, tt := range tests {
		c := NewCounter("x", tt.target)
		if c.Step != tt.step || c.Interval != tt.interval {
			t.Errorf("target %d: step=%d interval=%v", tt.target, c.Step, c.Interval)
		}
	}
}

func TestCounter_ReachesTarget(t *testing.T) {
	g := NewWithT(t)
	c := NewCounter("commits", 100)

	g.Expect(c.Advance(19 * time.Millisecond)).To(Equal("0+"))
	g.Expect(c.Advance(time.Millisecond)).To(Equal("2+"))
	g.Expect(c.Advance(3 * time.Second)).To(Equal("100+"))
	g.Expect(c.Done()).To(BeTrue())
}

func TestCounter_Suffixes(t *testing.T) {
	tests := []struct {
		target int
		want   string
	}{
		{24, "24/7"},
		{100, "100+"},
		{15, "15"},
	}
	for _, tt := range tests {
		c := NewCounter("x", tt.target)
		if got := c.Advance(time.Minute); got != tt.want {
			t.Errorf("target %d: got %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestCounter_OvershootClamps(t *testing.T) {
	c := NewCounter("x", 51)
	c.Advance(time.Minute)
	if c.Value() != 51 {
		t.Errorf("expected clamp to 51, got %d", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Errorf("expected reset to 0, got %d", c.Value())
	}
}
