package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/plexus/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	"classic": "the original field",
	"dense":   "twice the particles",
	"calm":    "slow drift, soft pull",
	"magnet":  "wide, strong pointer pull",
	"web":     "long faint links",
	"ocean":   "cool palette",
}

type pickerState int

const (
	stateMenu pickerState = iota
	stateConfig
)

// tunable is one editable field parameter.
type tunable struct {
	name string
	step float64
	get  func(c *config.Config) float64
	set  func(c *config.Config, v float64)
}

var tunables = []tunable{
	{"particles", 5, func(c *config.Config) float64 { return float64(c.Field.MaxParticles) }, func(c *config.Config, v float64) { c.Field.MaxParticles = int(v) }},
	{"spacing", 1, func(c *config.Config) float64 { return c.Field.Spacing }, func(c *config.Config, v float64) { c.Field.Spacing = v }},
	{"speed", 0.05, func(c *config.Config) float64 { return c.Field.Speed }, func(c *config.Config, v float64) { c.Field.Speed = v }},
	{"link", 10, func(c *config.Config) float64 { return c.Field.LinkDistance }, func(c *config.Config, v float64) { c.Field.LinkDistance = v }},
	{"attract", 10, func(c *config.Config) float64 { return c.Field.AttractRadius }, func(c *config.Config, v float64) { c.Field.AttractRadius = v }},
	{"strength", 0.002, func(c *config.Config) float64 { return c.Field.AttractStrength }, func(c *config.Config, v float64) { c.Field.AttractStrength = v }},
}

// picker chooses a preset and lets the user tune it before launch.
type picker struct {
	state   pickerState
	cursor  int
	presets []string

	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string

	chosen   bool
	canceled bool
}

func newPicker() picker {
	return picker{presets: config.ListPresets()}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.state = stateConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m picker) configKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	t := tunables[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil && val > 0 {
				t.set(m.cfg, val)
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%g", t.get(m.cfg))
	case "left", "h":
		if v := t.get(m.cfg) - t.step; v > 0 {
			t.set(m.cfg, v)
		}
	case "right", "l":
		t.set(m.cfg, t.get(m.cfg)+t.step)
	case "s":
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

func (m picker) View() string {
	if m.state == stateConfig {
		return m.viewConfig()
	}
	return m.viewMenu()
}

func (m picker) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("            " + cyan.Render("p l e x u s") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter tune   q quit") + "\n")
	return b.String()
}

func (m picker) viewConfig() string {
	var b strings.Builder

	name := m.presets[m.cursor]
	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(name) + "  " + dim.Render(presetInfo[name]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, t := range tunables {
		val := fmt.Sprintf("%8.3f", t.get(m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", t.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", t.name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

// Pick runs the preset menu. It returns nil when the user quits.
func Pick() (*config.Config, string, error) {
	out, err := tea.NewProgram(newPicker(), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, "", err
	}
	m := out.(picker)
	if !m.chosen {
		return nil, "", nil
	}
	return m.cfg, m.presets[m.cursor], nil
}
