package experiment

import (
	"context"
	"fmt"

	"github.com/blokeley/montecarlo/internal/config"
	"github.com/blokeley/montecarlo/internal/dist"
	"github.com/blokeley/montecarlo/internal/mc"
)

// Experiment binds a run configuration and model into an engine.
type Experiment struct {
	Name    string
	Seed    int64
	model   mc.Model
	cfg     mc.Config
	sampler *dist.Sampler
}

func New(model mc.Model, cfg mc.Config, seed int64) *Experiment {
	return &Experiment{
		Name:    model.Name(),
		Seed:    seed,
		model:   model,
		cfg:     cfg,
		sampler: dist.New(seed),
	}
}

// FromConfig resolves a file/preset configuration into an experiment
// using the registry.
func FromConfig(reg *Registry, cfg *config.Config) (*Experiment, error) {
	specs, err := cfg.Specs()
	if err != nil {
		return nil, err
	}
	model, err := reg.GetModelN(cfg.Model, len(specs))
	if err != nil {
		return nil, err
	}
	runCfg := mc.Config{
		Inputs:      specs,
		Samples:     cfg.Trials,
		Batch:       cfg.Batch,
		Tolerance:   cfg.Tolerance,
		MaxBatches:  cfg.MaxBatches,
		BestEffort:  cfg.BestEffort,
		Bins:        cfg.Bins,
		Edges:       cfg.Edges,
		KeepOutputs: cfg.LSL != nil || cfg.USL != nil,
	}
	return New(model, runCfg, cfg.Seed), nil
}

func (e *Experiment) Config() mc.Config { return e.cfg }
func (e *Experiment) Model() mc.Model   { return e.model }

func (e *Experiment) Run(ctx context.Context) (*mc.Result, error) {
	if e.model == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	eng := mc.NewEngine(e.model, e.sampler)
	return eng.Run(ctx, e.cfg)
}

// Start returns an incremental run for live observation.
func (e *Experiment) Start() (*mc.Run, error) {
	eng := mc.NewEngine(e.model, e.sampler)
	return eng.Start(e.cfg)
}
