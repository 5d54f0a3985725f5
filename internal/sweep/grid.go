// Package sweep runs a simulation once per point of a parameter grid,
// for sensitivity studies over distribution parameters.
package sweep

import (
	"context"
	"math"

	"github.com/blokeley/montecarlo/internal/experiment"
	"github.com/blokeley/montecarlo/internal/mc"
)

// Grid enumerates the cross product of named parameter ranges.
type Grid struct {
	paramNames []string
	ranges     [][]float64
}

func NewGrid(params []string, ranges [][]float64) *Grid {
	return &Grid{paramNames: params, ranges: ranges}
}

// Range builds steps+1 evenly spaced values over [from, to].
func Range(from, to float64, steps int) []float64 {
	if steps < 1 {
		return []float64{from}
	}
	vals := make([]float64, steps+1)
	width := (to - from) / float64(steps)
	for i := range vals {
		vals[i] = from + float64(i)*width
	}
	return vals
}

// Point is one evaluated grid combination.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Search evaluates objective at every grid point and returns the
// minimizing combination along with all evaluated points. Points whose
// experiment fails to build or run are skipped.
func (g *Grid) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	objective func(*mc.Result) float64,
) (map[string]float64, float64, []Point, error) {

	best := math.Inf(1)
	var bestParams map[string]float64
	var points []Point

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, objective, &best, &bestParams, &points)

	return bestParams, best, points, nil
}

func (g *Grid) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	objective func(*mc.Result) float64,
	best *float64,
	bestParams *map[string]float64,
	points *[]Point,
) {
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val := objective(result)
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*points = append(*points, Point{Params: params, Value: val})

		if val < *best {
			*best = val
			*bestParams = params
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val
		g.searchRecursive(ctx, depth+1, next, buildExperiment, objective, best, bestParams, points)
	}
}
