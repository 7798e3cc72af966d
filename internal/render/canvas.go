package render

import (
	"image/color"
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a terminal cell grid where every cell holds 2x4 Braille dots and
// the colour of the last thing drawn into it. It implements Surface; viewport
// pixels map to dots through DotSize.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA

	// DotSize is the number of viewport pixels per Braille dot.
	DotSize float64
	// MinAlpha hides strokes fainter than this; the 0.2-capped link lines
	// would otherwise smear the whole grid.
	MinAlpha float64

	alpha  float64
	fill   color.RGBA
	stroke color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:    w,
		Height:   h,
		Grid:     make([][]rune, h),
		Colors:   make([][]color.RGBA, h),
		DotSize:  1,
		MinAlpha: 0.05,
		alpha:    1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// DotWidth and DotHeight give the canvas size in sub-pixel dots.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// Set sets a dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) setColored(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = clr
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Reset blanks every cell.
func (c *Canvas) Reset() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// DrawLine draws a dot line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, clr color.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.setColored(x0, y0, clr)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills every dot within r of (cx, cy); always at least the centre.
func (c *Canvas) DrawDisc(cx, cy int, r float64, clr color.RGBA) {
	c.setColored(cx, cy, clr)
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.setColored(cx+dx, cy+dy, clr)
			}
		}
	}
}

func (c *Canvas) toDot(v float64) int {
	if c.DotSize <= 0 {
		return int(v)
	}
	return int(math.Floor(v / c.DotSize))
}

// Clear blanks the grid; the size arguments are ignored because the cell
// grid is sized by the host.
func (c *Canvas) Clear(width, height float64) { c.Reset() }

func (c *Canvas) SetAlpha(a float64)          { c.alpha = a }
func (c *Canvas) SetFillColor(v color.RGBA)   { c.fill = v }
func (c *Canvas) SetStrokeColor(v color.RGBA) { c.stroke = v }

func (c *Canvas) FillCircle(x, y, r float64) {
	rd := 0.0
	if c.DotSize > 0 {
		rd = r / c.DotSize
	}
	c.DrawDisc(c.toDot(x), c.toDot(y), rd, fade(c.fill, c.alpha))
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64) {
	if c.alpha < c.MinAlpha {
		return
	}
	c.DrawLine(c.toDot(x0), c.toDot(y0), c.toDot(x1), c.toDot(y1), fade(c.stroke, c.alpha))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// fade darkens clr toward black by alpha, which is how a translucent stroke
// reads on the dark terminal background.
func fade(clr color.RGBA, alpha float64) color.RGBA {
	if alpha > 1 {
		alpha = 1
	}
	if alpha < 0 {
		alpha = 0
	}
	// terminal cells cannot blend, so keep faint strokes legible
	k := 0.35 + 0.65*alpha
	return color.RGBA{
		R: uint8(float64(clr.R) * k),
		G: uint8(float64(clr.G) * k),
		B: uint8(float64(clr.B) * k),
		A: 0xff,
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
