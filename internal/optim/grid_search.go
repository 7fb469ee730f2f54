package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/balls/internal/sim"
)

// BuildFunc creates a fresh simulator for one grid point.
type BuildFunc func(params map[string]float64) (*sim.Simulator, error)

// GridSearch tries every combination of parameter values and keeps the one
// with the lowest metric summary.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	evaluated  int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Evaluated is the number of grid points that ran to completion in the last
// search.
func (g *GridSearch) Evaluated() int { return g.evaluated }

// Search runs every grid point for cfg.Frames frames. Points that fail to
// build or run are skipped; cancellation stops the search and returns the
// best point found so far together with ctx's error.
func (g *GridSearch) Search(
	ctx context.Context,
	build BuildFunc,
	cfg sim.Config,
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	g.evaluated = 0

	g.searchRecursive(ctx, 0, make(map[string]float64), build, cfg, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, best, fmt.Errorf("grid search: no point produced metric %q", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	cfg sim.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		s, err := build(current)
		if err != nil {
			return
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return
		}
		g.evaluated++

		val, ok := result.Metrics[metricName]
		if ok && val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, build, cfg, metricName, best, bestParams)
	}
}
