package mc

import (
	"context"
	"sync"

	"github.com/blokeley/montecarlo/internal/dist"
	"github.com/blokeley/montecarlo/internal/stats"
)

// Ensemble runs the same simulation across independent workers. Each
// worker owns a separately seeded sampler so runs stay uncorrelated,
// and partial statistics are merged with the commutative combine rule
// rather than concatenation.
type Ensemble struct {
	model     Model
	numRuns   int
	seedStart int64
}

func NewEnsemble(model Model, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{model: model, numRuns: numRuns, seedStart: seedStart}
}

// Run executes numRuns copies of cfg and merges them into one result.
// Histograms merge only when cfg pins explicit edges; auto-binned
// histograms differ per worker and are dropped from the merged result.
func (e *Ensemble) Run(ctx context.Context, cfg Config) (*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sampler := dist.New(e.seedStart + int64(idx))
			eng := NewEngine(e.model, sampler)
			results[idx], errs[idx] = eng.Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return mergeResults(results, len(cfg.Edges) > 0)
}

func mergeResults(results []*Result, mergeHist bool) (*Result, error) {
	var running stats.Running
	var hist *stats.Histogram
	converged := true
	var outputs []float64

	for _, res := range results {
		running.Merge(stats.Restore(res.Stats))
		converged = converged && res.Converged
		outputs = append(outputs, res.Outputs...)

		if mergeHist && res.Hist != nil {
			if hist == nil {
				h, err := stats.NewHistogram(res.Hist.Edges())
				if err != nil {
					return nil, err
				}
				hist = h
			}
			if err := hist.Merge(res.Hist); err != nil {
				return nil, err
			}
		}
	}

	return &Result{
		Stats:       running.Snapshot(),
		Hist:        hist,
		SampleCount: running.Count(),
		Converged:   converged,
		Outputs:     outputs,
	}, nil
}
