package tui

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/hud"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sc, err := field.NewScene(1280, 720, field.DefaultParams(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(sc, Options{
		Theme:     "rose",
		FPS:       60,
		DotSize:   8,
		Debounce:  250 * time.Millisecond,
		Captions:  []string{"hello"},
		Stats:     hud.DefaultStats,
		ExportDir: t.TempDir(),
	})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TickAdvancesScene(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)

	start := time.Now()
	for i := 0; i < 3; i++ {
		m = update(m, TickMsg(start.Add(time.Duration(i)*16*time.Millisecond)))
	}
	g.Expect(m.Scene().Ticks()).To(Equal(uint64(3)))
	g.Expect(m.linkHistory).To(HaveLen(3))
	g.Expect(m.View()).To(ContainSubstring("space:pause"))
}

func TestModel_PauseStopsTicks(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))
	if m.Scene().Ticks() != 0 {
		t.Errorf("paused model ticked %d times", m.Scene().Ticks())
	}
	if !strings.Contains(m.statusLine(), "paused") {
		t.Errorf("status = %q", m.statusLine())
	}
}

func TestModel_ReseedRegenerates(t *testing.T) {
	m := newTestModel(t)
	gen := m.Scene().Generation()
	m = update(m, key("r"))
	if m.Scene().Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", m.Scene().Generation(), gen+1)
	}
}

func TestModel_ThemeCycles(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	g.Expect(Themes[m.theme].Name).To(Equal("rose"))

	m = update(m, key("t"))
	g.Expect(Themes[m.theme].Name).To(Equal(Themes[1].Name))
	g.Expect(m.renderParams().HueShift).To(Equal(Themes[1].HueShift))

	for i := 1; i < len(Themes); i++ {
		m = update(m, key("t"))
	}
	g.Expect(m.theme).To(Equal(0))
}

func TestModel_WindowSize(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	gen := m.Scene().Generation()

	// first size applies immediately
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	cols, rows := 100-statsWidth, 30-hudHeight
	g.Expect(m.canvas.Width).To(Equal(cols))
	g.Expect(m.canvas.Height).To(Equal(rows))
	g.Expect(m.Scene().Generation()).To(Equal(gen + 1))
	g.Expect(m.Scene().Bounds().Width).To(Equal(float64(cols * 2 * 8)))
	g.Expect(m.Scene().Bounds().Height).To(Equal(float64(rows * 4 * 8)))

	// later sizes wait for the debounce
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	g.Expect(m.Scene().Generation()).To(Equal(gen + 1))
	m = update(m, TickMsg(time.Now()))
	g.Expect(m.Scene().Generation()).To(Equal(gen + 1))
	m = update(m, TickMsg(time.Now().Add(time.Second)))
	g.Expect(m.Scene().Generation()).To(Equal(gen + 2))
	g.Expect(m.Scene().Bounds().Width).To(Equal(float64((120 - statsWidth) * 16)))
}

func TestModel_MouseMovesPointer(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)

	m = update(m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	g.Expect(m.Scene().Pointer()).To(Equal(field.Pointer{X: 56, Y: 80}))

	m = update(m, tea.MouseMsg{X: 1000, Y: 2, Action: tea.MouseActionMotion})
	g.Expect(m.Scene().Pointer()).To(Equal(field.Pointer{X: 56, Y: 80}))
}

func TestModel_StatsToggleWidensCanvas(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(m, key("s"))
	if m.canvas.Width != 100 {
		t.Errorf("canvas width = %d, want 100", m.canvas.Width)
	}
}

func TestModel_ExportSVG(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)

	m = update(m, key("e"))
	g.Expect(m.status).To(ContainSubstring("nothing"))

	m = update(m, TickMsg(time.Now()))
	m = update(m, key("e"))
	path := filepath.Join(m.opts.ExportDir, "plexus-1.svg")
	g.Expect(m.status).To(Equal("saved " + path))

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(ContainSubstring("<circle"))
}

func TestModel_GIFRecording(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 12})

	m = update(m, key("g"))
	g.Expect(m.gif).NotTo(BeNil())
	now := time.Now()
	for i := 0; i < 4; i++ {
		m = update(m, TickMsg(now.Add(time.Duration(i)*time.Millisecond)))
	}
	m = update(m, key("g"))
	g.Expect(m.gif).To(BeNil())

	_, err := os.Stat(filepath.Join(m.opts.ExportDir, "plexus.gif"))
	g.Expect(err).NotTo(HaveOccurred())
}

func TestCellToPixel(t *testing.T) {
	m := newTestModel(t)
	x, y, ok := m.cellToPixel(0, 0)
	if !ok || x != 8 || y != 16 {
		t.Errorf("cell (0,0) -> (%g,%g,%v)", x, y, ok)
	}
	if _, _, ok := m.cellToPixel(-1, 0); ok {
		t.Error("negative cell should be rejected")
	}
}

func TestRenderCanvas_BlankCellsAreSpaces(t *testing.T) {
	m := newTestModel(t)
	out := renderCanvas(m.canvas)
	if strings.ContainsRune(out, '⠀') {
		t.Error("blank braille cells should render as spaces")
	}
	if got := strings.Count(out, "\n"); got != m.canvas.Height-1 {
		t.Errorf("rows = %d", got+1)
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("empty text should stay empty")
	}
	if GradientText("ab", "nope", "#ffffff") != "ab" {
		t.Error("bad colour should return text unchanged")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean")
	}
	if GetTheme("missing").Name != "rose" {
		t.Error("unknown theme should fall back to rose")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func TestLiveRenderer(t *testing.T) {
	g := NewWithT(t)
	sc, err := field.NewScene(400, 200, field.DefaultParams(), rand.New(rand.NewSource(9)))
	g.Expect(err).NotTo(HaveOccurred())

	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 40, 10, 30)
	clock := time.Unix(0, 0)
	r.now = func() time.Time { return clock }

	g.Expect(r.OnFrame(sc.Tick(), sc.Field())).To(Succeed())
	first := buf.Len()
	g.Expect(buf.String()).To(ContainSubstring("tick=1"))

	// throttled
	g.Expect(r.OnFrame(sc.Tick(), sc.Field())).To(Succeed())
	g.Expect(buf.Len()).To(Equal(first))

	clock = clock.Add(time.Second)
	g.Expect(r.OnFrame(sc.Tick(), sc.Field())).To(Succeed())
	g.Expect(buf.String()).To(ContainSubstring("tick=3"))
}
