package tui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/host"
	"github.com/san-kum/plexus/internal/hud"
	"github.com/san-kum/plexus/internal/render"
)

const (
	statsWidth      = 34
	hudHeight       = 2
	historyCapacity = 120
	defaultCols     = 80
	defaultRows     = 24
)

type TickMsg time.Time

// Options configure the terminal host.
type Options struct {
	Theme    string
	FPS      int
	DotSize  float64
	Debounce time.Duration
	Captions []string
	Stats    []hud.Stat
	// ExportDir receives SVG snapshots and GIF recordings.
	ExportDir string
}

// Model drives a Scene from bubbletea messages. The terminal is a grid of
// Braille cells; each cell is 2x4 dots and each dot DotSize pixels.
type Model struct {
	scene  *field.Scene
	canvas *render.Canvas
	opts   Options
	theme  int

	cols, rows int
	sized      bool
	resize     *host.Debouncer

	frame    field.Frame
	lastTick time.Time
	running  bool
	stats    bool

	caption     *hud.Typewriter
	counters    []*hud.Counter
	linkHistory []float64

	gif    *export.GIFRecorder
	status string
}

func NewModel(scene *field.Scene, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.DotSize <= 0 {
		opts.DotSize = 8
	}
	m := Model{
		scene:       scene,
		opts:        opts,
		theme:       themeIndex(opts.Theme),
		cols:        defaultCols,
		rows:        defaultRows,
		resize:      host.NewDebouncer(opts.Debounce),
		running:     true,
		stats:       true,
		caption:     hud.NewTypewriter(opts.Captions),
		counters:    hud.NewCounters(opts.Stats),
		linkHistory: make([]float64, 0, historyCapacity),
	}
	m.canvas = m.newCanvas()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.finishGIF()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.scene.Reseed()
			m.status = "reseeded"
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.status = "theme " + Themes[m.theme].Name
		case "s":
			m.stats = !m.stats
			m.relayout()
		case "e":
			m.exportSVG()
		case "g":
			if m.gif != nil {
				m.finishGIF()
			} else {
				m.gif = export.NewGIFRecorder(m.renderParams(), 2)
				m.status = "recording"
			}
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.relayout()
	case tea.MouseMsg:
		x, y, ok := m.cellToPixel(msg.X, msg.Y)
		if ok {
			m.scene.MovePointer(x, y)
		}
	case TickMsg:
		now := time.Time(msg)
		dt := time.Second / time.Duration(m.opts.FPS)
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.applyResize(now)

		if m.running {
			m.frame = m.scene.Tick()
			m.pushLinks(float64(m.frame.Links))
			if m.gif != nil {
				if err := m.gif.OnFrame(m.frame, m.scene.Field()); err != nil {
					log.Printf("tui: gif frame: %v", err)
				}
			}
		}
		m.canvas.Reset()
		render.Replay(m.frame, m.canvas, m.renderParams())

		m.caption.Advance(dt)
		for _, c := range m.counters {
			c.Advance(dt)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) renderParams() field.Params {
	prm := m.scene.Params()
	prm.HueShift += Themes[m.theme].HueShift
	return prm
}

func (m Model) canvasCells() (int, int) {
	w := m.cols
	if m.stats {
		w -= statsWidth
	}
	h := m.rows - hudHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (m Model) newCanvas() *render.Canvas {
	w, h := m.canvasCells()
	c := render.NewCanvas(w, h)
	c.DotSize = m.opts.DotSize
	return c
}

// relayout resizes the canvas to the terminal at once and schedules the
// field regeneration. The first size is applied without waiting.
func (m *Model) relayout() {
	m.canvas = m.newCanvas()
	w := float64(m.canvas.DotWidth()) * m.opts.DotSize
	h := float64(m.canvas.DotHeight()) * m.opts.DotSize
	if !m.sized {
		m.sized = true
		if err := m.scene.Resize(w, h); err != nil {
			log.Printf("tui: resize: %v", err)
		}
		return
	}
	m.resize.Request(w, h, time.Now())
}

func (m *Model) applyResize(now time.Time) {
	b, ok := m.resize.Due(now)
	if !ok {
		return
	}
	if err := m.scene.Resize(b.Width, b.Height); err != nil {
		log.Printf("tui: resize: %v", err)
		return
	}
	log.Printf("tui: field regenerated for %.0fx%.0f", b.Width, b.Height)
}

// cellToPixel maps a terminal cell to the viewport pixel at its centre.
func (m Model) cellToPixel(col, row int) (float64, float64, bool) {
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return 0, 0, false
	}
	d := m.opts.DotSize
	return (float64(col)*2 + 1) * d, (float64(row)*4 + 2) * d, true
}

func (m *Model) pushLinks(v float64) {
	m.linkHistory = append(m.linkHistory, v)
	if len(m.linkHistory) > historyCapacity {
		m.linkHistory = m.linkHistory[1:]
	}
}

func (m *Model) exportSVG() {
	if m.frame.Tick == 0 {
		m.status = "nothing to export yet"
		return
	}
	path := filepath.Join(m.opts.ExportDir, fmt.Sprintf("plexus-%d.svg", m.frame.Tick))
	f, err := os.Create(path)
	if err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := export.FrameToSVG(f, m.frame, m.renderParams()); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) finishGIF() {
	if m.gif == nil {
		return
	}
	rec := m.gif
	m.gif = nil
	path := filepath.Join(m.opts.ExportDir, "plexus.gif")
	f, err := os.Create(path)
	if err != nil {
		m.status = "gif failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		m.status = "gif failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m Model) View() string {
	th := Themes[m.theme]
	canvasView := renderCanvas(m.canvas)
	if m.stats {
		canvasView = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Height(m.canvas.Height).Render(m.statsView(th)))
	}

	var counters []string
	for _, c := range m.counters {
		counters = append(counters, th.counter().Render(c.Text())+" "+th.muted().Render(c.Label))
	}
	caption := th.caption().Render(m.caption.Text()) + th.title().Render("▋")
	line := caption
	if len(counters) > 0 {
		line += "   " + strings.Join(counters, "  ")
	}

	return canvasView + "\n" + line + "\n" + helpStyle.Render(m.statusLine())
}

func (m Model) statusLine() string {
	state := "running"
	if !m.running {
		state = "paused"
	}
	if m.gif != nil {
		state += fmt.Sprintf(" ● rec %d", m.gif.Len())
	}
	s := state + "  space:pause r:reseed t:theme s:stats e:svg g:gif q:quit"
	if m.status != "" {
		s += "  " + m.status
	}
	return s
}

func (m Model) statsView(th Theme) string {
	var s strings.Builder
	s.WriteString(GradientText("p l e x u s", th.Primary, th.Secondary) + "\n")
	s.WriteString(Separator(statsWidth-6) + "\n")

	b := m.scene.Bounds()
	p := m.scene.Pointer()
	rows := [][2]string{
		{"tick", fmt.Sprintf("%d", m.scene.Ticks())},
		{"viewport", fmt.Sprintf("%.0fx%.0f", b.Width, b.Height)},
		{"particles", fmt.Sprintf("%d", m.scene.Field().Len())},
		{"links", fmt.Sprintf("%d", m.frame.Links)},
		{"attracted", fmt.Sprintf("%d", m.frame.Attracted)},
		{"pointer", fmt.Sprintf("%.0f,%.0f", p.X, p.Y)},
		{"field", fmt.Sprintf("#%d", m.scene.Generation())},
		{"theme", th.Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}

	if len(m.linkHistory) > 1 {
		chart := asciigraph.Plot(m.linkHistory, asciigraph.Height(4), asciigraph.Width(statsWidth-14), asciigraph.Caption("links"))
		s.WriteString("\n" + th.muted().Render(chart))
	}
	return s.String()
}

// Scene exposes the driven scene, mainly for tests.
func (m Model) Scene() *field.Scene { return m.scene }

// Run starts the program in the alternate screen with mouse motion events.
func Run(scene *field.Scene, opts Options) error {
	p := tea.NewProgram(NewModel(scene, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
