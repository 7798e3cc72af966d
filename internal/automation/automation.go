// Package automation replays scripted sequences of headless runs from yaml.
package automation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
)

// Scenario defines a scripted sequence of recorded runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one recorded run. Zero fields fall back to the base
// configuration the scenario is run with.
type ScenarioStep struct {
	Preset      string             `yaml:"preset"`
	Ticks       int                `yaml:"ticks"`
	Seed        int64              `yaml:"seed"`
	Width       float64            `yaml:"width"`
	Height      float64            `yaml:"height"`
	OrbitRadius float64            `yaml:"orbit_radius"`
	OrbitPeriod int                `yaml:"orbit_period"`
	Params      map[string]float64 `yaml:"params"`
	SaveAs      string             `yaml:"save_as"`
}

// StepResult pairs a step with the run it stored.
type StepResult struct {
	RunID   string
	Name    string
	Frames  int
	Metrics map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

// stepConfig resolves a step against base.
func stepConfig(base *config.Config, step ScenarioStep) (*config.Config, error) {
	cfg := *base
	if step.Preset != "" {
		p := config.GetPreset(step.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", step.Preset)
		}
		cfg.Field = p.Field
	}
	if step.Ticks > 0 {
		cfg.Record.Ticks = step.Ticks
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if step.Width > 0 {
		cfg.Width = step.Width
	}
	if step.Height > 0 {
		cfg.Height = step.Height
	}
	if step.OrbitRadius > 0 {
		cfg.Record.OrbitRadius = step.OrbitRadius
	}
	if step.OrbitPeriod > 0 {
		cfg.Record.OrbitPeriod = step.OrbitPeriod
	}
	for k, v := range step.Params {
		if err := cfg.Field.Set(k, v); err != nil {
			return nil, err
		}
	}
	return &cfg, cfg.Validate()
}

// RunScenario records every step into store, stopping at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, store *storage.Store) ([]StepResult, error) {
	if err := store.Init(); err != nil {
		return nil, err
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := stepConfig(base, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = step.Preset
		}
		log.Printf("automation: step %d/%d %s (%d frames)", i+1, len(scenario.Steps), name, cfg.Record.Ticks)

		scene, err := field.NewScene(cfg.Width, cfg.Height, cfg.Field, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		s := sim.New(scene)
		for _, m := range metrics.Default() {
			s.AddMetric(m)
		}

		simCfg := sim.DefaultConfig()
		simCfg.Ticks = cfg.Record.Ticks
		simCfg.Path = sim.Orbit{Radius: cfg.Record.OrbitRadius, Period: cfg.Record.OrbitPeriod}
		result, err := s.Run(ctx, simCfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		runID, err := store.Save(storage.RunMetadata{
			Preset: name,
			Seed:   cfg.Seed,
			Width:  cfg.Width,
			Height: cfg.Height,
			Path:   fmt.Sprintf("orbit r=%.0f period=%d", cfg.Record.OrbitRadius, cfg.Record.OrbitPeriod),
		}, result)
		if err != nil {
			return results, fmt.Errorf("step %d save: %w", i+1, err)
		}

		results = append(results, StepResult{
			RunID:   runID,
			Name:    name,
			Frames:  result.TicksTaken,
			Metrics: result.Metrics,
		})
	}

	return results, nil
}
