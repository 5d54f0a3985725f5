package mc

import (
	"context"
	"fmt"

	"github.com/blokeley/montecarlo/internal/dist"
	"github.com/blokeley/montecarlo/internal/stats"
)

// Engine orchestrates one simulation: it requests samples from the
// sampler, maps the model over them, and folds outputs into running
// statistics until the stopping rule fires.
type Engine struct {
	model   Model
	sampler *dist.Sampler
}

func NewEngine(model Model, sampler *dist.Sampler) *Engine {
	return &Engine{model: model, sampler: sampler}
}

// Run executes the whole simulation and returns the final result.
func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	run, err := e.Start(cfg)
	if err != nil {
		return nil, err
	}
	for {
		done, err := run.Step(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return run.Result()
}

// Start validates cfg and returns a Run that advances one batch per
// Step call, for callers that want to observe convergence live.
func (e *Engine) Start(cfg Config) (*Run, error) {
	if err := e.validateConfig(&cfg); err != nil {
		return nil, err
	}
	r := &Run{eng: e, cfg: cfg, phase: PhaseIdle}
	if len(cfg.Edges) > 0 {
		hist, err := stats.NewHistogram(cfg.Edges)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		r.hist = hist
	}
	return r, nil
}

// validateConfig normalizes defaults in place and rejects unusable
// configurations.
func (e *Engine) validateConfig(cfg *Config) error {
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("%w: no input distributions", ErrInvalidConfig)
	}
	if len(cfg.Inputs) != e.model.Arity() {
		return &ShapeError{Model: e.model.Name(), Want: e.model.Arity(), Got: len(cfg.Inputs)}
	}
	for _, spec := range cfg.Inputs {
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0, got %g", ErrInvalidConfig, cfg.Tolerance)
	}
	if cfg.Tolerance == 0 {
		// Fixed-count rule.
		if cfg.Samples <= 0 {
			return &dist.SampleCountError{N: cfg.Samples}
		}
		if cfg.Batch <= 0 || cfg.Batch > cfg.Samples {
			cfg.Batch = cfg.Samples
		}
	} else {
		if cfg.Batch <= 0 {
			cfg.Batch = DefaultBatch
		}
		if cfg.MaxBatches <= 0 {
			cfg.MaxBatches = DefaultMaxBatches
		}
	}
	if cfg.Bins < 0 {
		return fmt.Errorf("%w: bins must be >= 0, got %d", ErrInvalidConfig, cfg.Bins)
	}
	return nil
}

// Run is a simulation in progress. It moves through the phases
// idle -> sampling -> evaluating -> aggregating per batch, looping
// until the stopping rule transitions it to done.
type Run struct {
	eng       *Engine
	cfg       Config
	running   stats.Running
	hist      *stats.Histogram
	trace     []ConvergencePoint
	outputs   []float64
	batches   int
	phase     Phase
	converged bool
}

func (r *Run) Phase() Phase { return r.phase }

func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		Count:     r.running.Count(),
		Mean:      r.running.Mean(),
		StdErr:    r.running.StdErr(),
		Batches:   r.batches,
		Converged: r.converged,
	}
}

// Step processes one batch and reports whether the run is done.
func (r *Run) Step(ctx context.Context) (bool, error) {
	if r.phase == PhaseDone {
		return true, nil
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	n := r.batchSize()
	if n == 0 {
		r.phase = PhaseDone
		return true, nil
	}

	r.phase = PhaseSampling
	samples, err := r.drawBatch(n)
	if err != nil {
		return false, err
	}

	r.phase = PhaseEvaluating
	outputs, err := Evaluate(r.eng.model, samples)
	if err != nil {
		return false, err
	}

	r.phase = PhaseAggregating
	r.fold(outputs)
	r.batches++
	r.trace = append(r.trace, ConvergencePoint{
		N:      r.running.Count(),
		Mean:   r.running.Mean(),
		StdErr: r.running.StdErr(),
	})

	if r.stopped() {
		r.phase = PhaseDone
		return true, nil
	}
	return false, nil
}

// batchSize returns how many samples the next batch should draw, zero
// when the fixed budget is already spent.
func (r *Run) batchSize() int {
	if r.cfg.Tolerance > 0 {
		return r.cfg.Batch
	}
	remaining := int64(r.cfg.Samples) - r.running.Count()
	if remaining <= 0 {
		return 0
	}
	if remaining < int64(r.cfg.Batch) {
		return int(remaining)
	}
	return r.cfg.Batch
}

// drawBatch samples every input spec and transposes the columns into
// index-aligned input vectors.
func (r *Run) drawBatch(n int) ([][]float64, error) {
	columns := make([][]float64, len(r.cfg.Inputs))
	for i, spec := range r.cfg.Inputs {
		col, err := r.eng.sampler.Sample(spec, n)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	samples := make([][]float64, n)
	for j := 0; j < n; j++ {
		row := make([]float64, len(columns))
		for i := range columns {
			row[i] = columns[i][j]
		}
		samples[j] = row
	}
	return samples, nil
}

func (r *Run) fold(outputs []float64) {
	if r.hist == nil && r.cfg.Bins > 0 {
		// Auto edges are frozen from the first batch so counts stay
		// comparable across batches.
		lo, hi := outputs[0], outputs[0]
		for _, y := range outputs {
			if y < lo {
				lo = y
			}
			if y > hi {
				hi = y
			}
		}
		r.hist, _ = stats.NewAutoHistogram(r.cfg.Bins, lo, hi)
	}
	r.running.PushAll(outputs)
	if r.hist != nil {
		r.hist.AddAll(outputs)
	}
	if r.cfg.KeepOutputs {
		r.outputs = append(r.outputs, outputs...)
	}
}

func (r *Run) stopped() bool {
	if r.cfg.Tolerance == 0 {
		return r.running.Count() >= int64(r.cfg.Samples)
	}
	if r.running.Count() > 1 && r.running.StdErr() < r.cfg.Tolerance {
		r.converged = true
		return true
	}
	return r.batches >= r.cfg.MaxBatches
}

// Result finalizes the run. A convergence run that exhausted its batch
// budget fails with a ConvergenceError unless the caller opted into
// best-effort mode, in which case the partial result is returned with
// Converged set to false.
func (r *Run) Result() (*Result, error) {
	if r.cfg.Tolerance > 0 && !r.converged && !r.cfg.BestEffort {
		return nil, &ConvergenceError{
			Achieved:  r.running.StdErr(),
			Tolerance: r.cfg.Tolerance,
			Samples:   r.running.Count(),
		}
	}
	fixed := r.cfg.Tolerance == 0
	return &Result{
		Stats:       r.running.Snapshot(),
		Hist:        r.hist,
		Trace:       r.trace,
		SampleCount: r.running.Count(),
		Converged:   r.converged || fixed,
		Outputs:     r.outputs,
	}, nil
}
