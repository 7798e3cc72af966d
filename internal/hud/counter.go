package hud

import (
	"strconv"
	"time"
)

const countDuration = 2 * time.Second

// Counter climbs from zero to Target in about two seconds, in steps of
// ceil(Target/50) every floor(2000/Target) milliseconds.
type Counter struct {
	Label    string
	Target   int
	Step     int
	Interval time.Duration

	current int
	pending time.Duration
}

func NewCounter(label string, target int) *Counter {
	c := &Counter{Label: label, Target: target}
	if target <= 0 {
		c.current = target
		return c
	}
	c.Step = (target + 49) / 50
	c.Interval = time.Duration(int(countDuration/time.Millisecond)/target) * time.Millisecond
	if c.Interval <= 0 {
		c.Interval = time.Millisecond
	}
	c.pending = c.Interval
	return c
}

func (c *Counter) Advance(dt time.Duration) string {
	if c.Done() {
		return c.Text()
	}
	c.pending -= dt
	for c.pending <= 0 && !c.Done() {
		c.current += c.Step
		if c.current >= c.Target {
			c.current = c.Target
		}
		c.pending += c.Interval
	}
	return c.Text()
}

func (c *Counter) Done() bool { return c.current >= c.Target }

func (c *Counter) Value() int { return c.current }

// Text formats the value; 24 reads as hours a week and 100 as a floor.
func (c *Counter) Text() string {
	s := strconv.Itoa(c.current)
	switch c.Target {
	case 24:
		return s + "/7"
	case 100:
		return s + "+"
	}
	return s
}

func (c *Counter) Reset() {
	c.current = 0
	c.pending = c.Interval
	if c.Target <= 0 {
		c.current = c.Target
	}
}

// Stat is a labelled counter target.
type Stat struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target"`
}

var DefaultStats = []Stat{
	{Label: "projects", Target: 15},
	{Label: "support", Target: 24},
	{Label: "commits", Target: 100},
}

func NewCounters(stats []Stat) []*Counter {
	out := make([]*Counter, len(stats))
	for i, s := range stats {
		out[i] = NewCounter(s.Label, s.Target)
	}
	return out
}
