package mc

import (
	"errors"
	"math"
)

var errNonFinite = errors.New("output is NaN or Inf")

// Evaluate maps model over every sample in order, preserving index
// alignment between inputs and outputs. A failure on any sample fails
// the whole batch; Monte Carlo aggregation assumes all samples are
// valid, so nothing is silently truncated.
func Evaluate(model Model, samples [][]float64) ([]float64, error) {
	outputs := make([]float64, len(samples))
	for i, x := range samples {
		if len(x) != model.Arity() {
			return nil, &ShapeError{Model: model.Name(), Want: model.Arity(), Got: len(x)}
		}
		y, err := model.Eval(x)
		if err != nil {
			return nil, &EvalError{Index: i, Input: x, Err: err}
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, &EvalError{Index: i, Input: x, Err: errNonFinite}
		}
		outputs[i] = y
	}
	return outputs, nil
}
