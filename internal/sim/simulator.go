package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/metrics"
)

// Simulator drives a controller without a window: scripted input, one step
// per frame, then metrics and observers.
type Simulator struct {
	ctrl      *control.Controller
	input     Input
	metrics   []metrics.Metric
	observers []Observer
}

func New(ctrl *control.Controller, input Input) *Simulator {
	return &Simulator{
		ctrl:      ctrl,
		input:     input,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			s.summarize(result)
			return result, ctx.Err()
		default:
		}

		if s.input != nil {
			s.input.Apply(s.ctrl, frame)
		}
		s.ctrl.Step()

		if cfg.Validate {
			if err := validateWorld(s.ctrl); err != nil {
				s.summarize(result)
				return result, &dynamo.RunError{Frame: frame, Wrapped: err}
			}
		}

		bounds := s.ctrl.Bounds()
		for _, m := range s.metrics {
			m.Observe(s.ctrl.World(), bounds)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Current())
		}
		for _, obs := range s.observers {
			obs.OnFrame(s.ctrl, frame)
		}
		result.Frames++
	}

	s.summarize(result)
	return result, nil
}

func (s *Simulator) summarize(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Balls = s.ctrl.World().Len()
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, cfg.Frames)
	}
	return nil
}

func validateWorld(c *control.Controller) error {
	for i, b := range c.Snapshot() {
		if !b.Pos.IsValid() || !b.Vel.IsValid() {
			return fmt.Errorf("%w: ball %d at %+v moving %+v", dynamo.ErrInvalidState, i, b.Pos, b.Vel)
		}
	}
	return nil
}
