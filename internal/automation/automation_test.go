package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/storage"
)

const scenarioYAML = `
name: demo
description: two short runs
steps:
  - preset: dense
    ticks: 10
    seed: 3
    save_as: dense-short
  - ticks: 5
    width: 400
    height: 300
    params:
      link_distance: 150
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	g := NewWithT(t)

	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Name).To(Equal("demo"))
	g.Expect(sc.Steps).To(HaveLen(2))
	g.Expect(sc.Steps[1].Params).To(HaveKeyWithValue("link_distance", 150.0))

	_, err = LoadScenario(writeScenario(t, "name: empty\n"))
	g.Expect(err).To(HaveOccurred())
}

func TestRunScenario(t *testing.T) {
	g := NewWithT(t)

	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())

	base := config.DefaultConfig()
	base.Seed = 1
	store := storage.New(t.TempDir())

	results, err := RunScenario(context.Background(), sc, base, store)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(2))
	g.Expect(results[0].Name).To(Equal("dense-short"))
	g.Expect(results[0].Frames).To(Equal(10))
	g.Expect(results[1].Frames).To(Equal(5))
	g.Expect(results[1].Metrics).To(HaveKey("links"))

	meta, err := store.Load(results[0].RunID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(meta.Seed).To(Equal(int64(3)))

	meta, err = store.Load(results[1].RunID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(meta.Width).To(Equal(400.0))
	g.Expect(meta.Preset).To(Equal("custom"))
}

func TestRunScenario_BadStep(t *testing.T) {
	g := NewWithT(t)

	sc := &Scenario{Steps: []ScenarioStep{
		{Ticks: 2},
		{Preset: "nope"},
	}}
	results, err := RunScenario(context.Background(), sc, config.DefaultConfig(), storage.New(t.TempDir()))
	g.Expect(err).To(MatchError(ContainSubstring("step 2")))
	g.Expect(results).To(HaveLen(1))

	sc = &Scenario{Steps: []ScenarioStep{{Params: map[string]float64{"gravity": 1}}}}
	_, err = RunScenario(context.Background(), sc, config.DefaultConfig(), storage.New(t.TempDir()))
	g.Expect(err).To(HaveOccurred())
}
