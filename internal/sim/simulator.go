package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
)

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}

// Simulator runs a Scene headless for a fixed number of ticks.
type Simulator struct {
	scene     *field.Scene
	metrics   []metrics.Metric
	observers []Observer
}

func New(scene *field.Scene) *Simulator {
	return &Simulator{
		scene:     scene,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Scene() *field.Scene { return s.scene }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.Path == nil {
		cfg.Path = Still{}
	}

	result := &Result{
		Frames:  make([]FrameStats, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if p, ok := cfg.Path.At(i, s.scene.Bounds()); ok {
			s.scene.MovePointer(p.X, p.Y)
		}

		frame := s.scene.Tick()
		f := s.scene.Field()

		for _, m := range s.metrics {
			m.Observe(frame, f)
		}
		for _, obs := range s.observers {
			if err := obs.OnFrame(frame, f); err != nil {
				return result, fmt.Errorf("observer at tick %d: %w", i, err)
			}
		}

		if cfg.ValidateBounds && !f.InBounds() {
			result.Errors = append(result.Errors, SimError{Tick: i, Message: "particle outside viewport"})
			break
		}

		ptr := s.scene.Pointer()
		result.Frames = append(result.Frames, FrameStats{
			Tick:      frame.Tick,
			Particles: frame.Circles,
			Links:     frame.Links,
			Attracted: frame.Attracted,
			Bounces:   frame.Bounces,
			MeanSpeed: f.MeanSpeed(),
			PointerX:  ptr.X,
			PointerY:  ptr.Y,
		})
		result.TicksTaken++
	}

	result.Metrics = metrics.Collect(s.metrics)
	return result, nil
}
