package automation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/control"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/metrics"
	"github.com/san-kum/balls/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted input sequence for a headless run.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Frames      int         `yaml:"frames"`
	Events      []EventSpec `yaml:"events"`
}

// EventSpec is one scenario entry. Action is down, move, up, key or throw.
// A throw expands to a press at (x, y), steps drags by (dx, dy) and a release.
type EventSpec struct {
	Frame  int     `yaml:"frame"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	Key    string  `yaml:"key"`
	Steps  int     `yaml:"steps"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if scenario.Frames < 0 {
		return nil, fmt.Errorf("%w: frames must not be negative", dynamo.ErrParameterBounds)
	}
	if _, err := scenario.Script(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Script converts the scenario into controller events.
func (s *Scenario) Script() (*control.Script, error) {
	events := make([]control.Event, 0, len(s.Events))
	for i, e := range s.Events {
		if e.Frame < 0 {
			return nil, fmt.Errorf("event %d: %w: negative frame %d", i+1, dynamo.ErrParameterBounds, e.Frame)
		}
		switch strings.ToLower(e.Action) {
		case "down":
			events = append(events, control.Event{Frame: e.Frame, Kind: control.EventDown, X: e.X, Y: e.Y})
		case "move":
			events = append(events, control.Event{Frame: e.Frame, Kind: control.EventMove, X: e.X, Y: e.Y, DX: e.DX, DY: e.DY})
		case "up":
			events = append(events, control.Event{Frame: e.Frame, Kind: control.EventUp})
		case "key":
			k, ok := parseKey(e.Key)
			if !ok {
				return nil, fmt.Errorf("event %d: unknown key %q", i+1, e.Key)
			}
			events = append(events, control.Event{Frame: e.Frame, Kind: control.EventKey, Key: k})
		case "throw":
			steps := e.Steps
			if steps <= 0 {
				steps = 1
			}
			events = append(events, control.Throw(e.Frame, e.X, e.Y, e.DX, e.DY, steps)...)
		default:
			return nil, fmt.Errorf("event %d: unknown action %q", i+1, e.Action)
		}
	}
	return control.NewScript(events...), nil
}

func parseKey(name string) (control.Key, bool) {
	for _, k := range []control.Key{control.KeyReset, control.KeySpawn, control.KeyDelete} {
		if strings.EqualFold(name, k.String()) {
			return k, true
		}
	}
	return control.KeyNone, false
}

// ParameterSweep runs the same seeded session across a range of values of one
// physics parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
}

// SweepResult holds the metric summaries of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Balls      int
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, cfg *config.Config, seed int64, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps", dynamo.ErrParameterBounds)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		s, err := Build(cfg, seed, nil, map[string]float64{sweep.ParamName: paramVal})
		if err != nil {
			return results, err
		}

		result, err := s.Run(ctx, sim.Config{Frames: sweep.Frames, Validate: true})
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
			Balls:      result.Balls,
		})
	}

	return results, nil
}

// Build creates a headless simulator with the default metrics after applying
// overrides to a copy of cfg's physics.
func Build(cfg *config.Config, seed int64, input sim.Input, overrides map[string]float64) (*sim.Simulator, error) {
	run := *cfg
	p := run.Params()
	if err := p.SetParams(overrides); err != nil {
		return nil, err
	}
	run.SetParams(p)

	s := sim.NewHeadless(&run, seed, input)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s, nil
}
