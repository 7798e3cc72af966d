package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/plexus/internal/render"
)

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsWidth - 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	Subtle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

func (t Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
}

func (t Theme) caption() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text)
}

func (t Theme) counter() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func (t Theme) muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// GradientText blends each rune from start to end in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	b, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLab(b, t).Clamped()
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return sb.String()
}

// Separator draws a muted rule with a centre diamond.
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-2)
	right := strings.Repeat("─", width-mid-2)
	return Subtle.Render(left + " ◆ " + right)
}

// renderCanvas colours each Braille cell with the last colour drawn into it.
// Runs of equal colour share one style to keep the escape output small.
func renderCanvas(c *render.Canvas) string {
	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		var runColor color.RGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor.A == 0 {
				sb.WriteString(run.String())
			} else {
				hex := colorful.Color{R: float64(runColor.R) / 255, G: float64(runColor.G) / 255, B: float64(runColor.B) / 255}.Hex()
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			clr := c.Colors[row][col]
			if r <= 0x2800 {
				r, clr = ' ', color.RGBA{}
			}
			if clr != runColor {
				flush()
				runColor = clr
			}
			run.WriteRune(r)
		}
		flush()
		if row < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
