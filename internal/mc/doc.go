// Package mc provides the Monte Carlo sampling engine.
//
// The engine draws input vectors from distribution specs, maps a
// deterministic model over them, and folds the outputs into running
// statistics and an optional histogram:
//
//   - [Model]: deterministic function from an input vector to a scalar
//   - [Engine]: orchestrates sampling, evaluation and aggregation
//   - [Config]: sample budget, batch size and stopping rule
//   - [Result]: final moments, histogram and convergence trace
//
// # Example
//
//	eng := mc.NewEngine(models.NewKineticEnergy(), dist.New(42))
//	result, _ := eng.Run(ctx, cfg)
//
// # Thread Safety
//
// Engine instances are NOT thread-safe: a run advances the sampler's
// generator. For parallel runs, use [Ensemble], which gives each worker
// its own seeded sampler and merges partial statistics.
package mc
