package mc

import (
	"github.com/blokeley/montecarlo/internal/dist"
	"github.com/blokeley/montecarlo/internal/stats"
)

// Model is a deterministic function from one input vector to one output
// value. Eval must not mutate shared state; the engine does not enforce
// purity but aggregation assumes it.
type Model interface {
	Name() string
	Arity() int
	Eval(x []float64) (float64, error)
}

type modelFunc struct {
	name  string
	arity int
	fn    func(x []float64) (float64, error)
}

func (m *modelFunc) Name() string { return m.name }
func (m *modelFunc) Arity() int   { return m.arity }

func (m *modelFunc) Eval(x []float64) (float64, error) { return m.fn(x) }

// ModelFunc wraps a plain function as a Model.
func ModelFunc(name string, arity int, fn func(x []float64) (float64, error)) Model {
	return &modelFunc{name: name, arity: arity, fn: fn}
}

// Config holds one run's sampling plan. A zero Tolerance means a fixed
// sample count; a positive Tolerance loops batches until the standard
// error of the mean drops below it or MaxBatches is exhausted.
type Config struct {
	Inputs      []dist.Spec
	Samples     int
	Batch       int
	Tolerance   float64
	MaxBatches  int
	BestEffort  bool
	Bins        int
	Edges       []float64
	KeepOutputs bool
}

const (
	DefaultBatch      = 1000
	DefaultMaxBatches = 100
)

// ConvergencePoint records the estimate after one batch, for
// convergence curves.
type ConvergencePoint struct {
	N      int64
	Mean   float64
	StdErr float64
}

// Snapshot is the live view of a run in progress.
type Snapshot struct {
	Count     int64
	Mean      float64
	StdErr    float64
	Batches   int
	Converged bool
}

// Result is the immutable outcome of a run.
type Result struct {
	Stats       stats.Snapshot
	Hist        *stats.Histogram
	Trace       []ConvergencePoint
	SampleCount int64
	Converged   bool
	// Outputs holds the raw evaluated outputs when Config.KeepOutputs
	// was set, e.g. for ppm-out-of-spec reporting. Nil otherwise.
	Outputs []float64
}

// Phase tracks where the driver is in its cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSampling
	PhaseEvaluating
	PhaseAggregating
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSampling:
		return "sampling"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseAggregating:
		return "aggregating"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}
