package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
)

// Ensemble runs independent scenes with consecutive seeds in parallel.
type Ensemble struct {
	Bounds    field.Bounds
	Params    field.Params
	NumRuns   int
	SeedStart int64
	// Metrics builds a fresh metric set per run.
	Metrics func() []metrics.Metric
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if e.NumRuns < 1 {
		return nil, fmt.Errorf("runs must be positive, got %d", e.NumRuns)
	}
	results := make([]*Result, e.NumRuns)
	errs := make([]error, e.NumRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.NumRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.SeedStart + int64(idx)))
			scene, err := field.NewScene(e.Bounds.Width, e.Bounds.Height, e.Params, rng)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(scene)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanMetrics averages each metric across results.
func MeanMetrics(results []*Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(results))
	}
	return out
}
