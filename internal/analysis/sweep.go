package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
)

// SweepPoint is the mean of every metric over an ensemble at one value.
type SweepPoint struct {
	Value   float64
	Metrics map[string]float64
}

// SweepConfig describes a sweep of one field parameter.
type SweepConfig struct {
	Bounds field.Bounds
	Base   field.Params
	Param  string
	Min    float64
	Max    float64
	Steps  int
	Runs   int
	Seed   int64
	Sim    sim.Config
}

// Sweep runs an ensemble at Steps evenly spaced values of Param. Each value
// uses the same seeds so differences come from the parameter alone.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	if _, err := cfg.Base.Get(cfg.Param); err != nil {
		return nil, err
	}
	steps := cfg.Steps
	if steps < 2 {
		steps = 2
	}
	runs := max(cfg.Runs, 1)
	step := (cfg.Max - cfg.Min) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		value := cfg.Min + float64(i)*step
		prm := cfg.Base
		if err := prm.Set(cfg.Param, value); err != nil {
			return nil, err
		}

		ens := &sim.Ensemble{
			Bounds:    cfg.Bounds,
			Params:    prm,
			NumRuns:   runs,
			SeedStart: cfg.Seed,
			Metrics:   metrics.Default,
		}
		results, err := ens.Run(ctx, cfg.Sim)
		if err != nil {
			return points, fmt.Errorf("%s=%g: %w", cfg.Param, value, err)
		}
		points = append(points, SweepPoint{Value: value, Metrics: sim.MeanMetrics(results)})
	}
	return points, nil
}

// Column extracts one metric from each point, in sweep order.
func Column(points []SweepPoint, metric string) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Metrics[metric]
	}
	return out
}
