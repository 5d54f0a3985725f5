package mc

import (
	"errors"
	"fmt"
)

// Engine errors.
var (
	// ErrModelEvaluation indicates the model failed on some input.
	ErrModelEvaluation = errors.New("mc: model evaluation failed")

	// ErrShapeMismatch indicates input dimensions that do not match
	// the model's arity.
	ErrShapeMismatch = errors.New("mc: shape mismatch between inputs and model")

	// ErrConvergenceNotReached indicates the batch budget ran out
	// before the standard error met the tolerance.
	ErrConvergenceNotReached = errors.New("mc: convergence not reached within batch budget")

	// ErrInvalidConfig indicates an unusable run configuration.
	ErrInvalidConfig = errors.New("mc: invalid run configuration")
)

// EvalError carries the offending sample index and the underlying
// cause. The whole evaluation fails; no partial output set is kept.
type EvalError struct {
	Index int
	Input []float64
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("model evaluation failed at sample %d (input %v): %v", e.Index, e.Input, e.Err)
}

func (e *EvalError) Unwrap() error { return ErrModelEvaluation }

// ShapeError reports an arity mismatch.
type ShapeError struct {
	Model string
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model %s takes %d inputs, got %d", e.Model, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// ConvergenceError reports achieved vs required tolerance.
type ConvergenceError struct {
	Achieved  float64
	Tolerance float64
	Samples   int64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("standard error %.6g did not reach tolerance %.6g after %d samples",
		e.Achieved, e.Tolerance, e.Samples)
}

func (e *ConvergenceError) Unwrap() error { return ErrConvergenceNotReached }
