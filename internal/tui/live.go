package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/plexus/internal/field"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a plain ANSI sim.Observer for headless runs: it prints a
// character sketch of the field at most FrameRate times a second.
type LiveRenderer struct {
	out       io.Writer
	cols      int
	rows      int
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, cols, rows, frameRate int) *LiveRenderer {
	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = make([]rune, cols)
	}
	return &LiveRenderer{
		out:       out,
		cols:      cols,
		rows:      rows,
		frameRate: frameRate,
		canvas:    canvas,
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnFrame(frame field.Frame, f *field.Field) error {
	now := r.now()
	if r.frameRate > 0 && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return nil
	}
	r.lastFrame = now

	r.clear()
	sx := float64(r.cols) / frame.Bounds.Width
	sy := float64(r.rows) / frame.Bounds.Height

	frame.Each(field.CmdLine, func(c field.Command) {
		if c.Alpha < 0.1 {
			return
		}
		r.line(int(c.X0*sx), int(c.Y0*sy), int(c.X1*sx), int(c.Y1*sy), '·')
	})
	frame.Each(field.CmdCircle, func(c field.Command) {
		ch := 'o'
		if c.Radius >= 3 {
			ch = 'O'
		}
		r.set(int(c.X0*sx), int(c.Y0*sy), ch)
	})

	return r.render(frame)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < r.cols && y >= 0 && y < r.rows {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *LiveRenderer) render(frame field.Frame) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  plexus  tick=%d  links=%d\n", frame.Tick, frame.Links))
	b.WriteString("  " + strings.Repeat("-", r.cols) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.cols) + "\n")
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
