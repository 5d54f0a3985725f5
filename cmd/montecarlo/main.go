package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/blokeley/montecarlo/internal/config"
	"github.com/blokeley/montecarlo/internal/experiment"
	"github.com/blokeley/montecarlo/internal/mc"
	"github.com/blokeley/montecarlo/internal/stats"
	"github.com/blokeley/montecarlo/internal/storage"
	"github.com/blokeley/montecarlo/internal/sweep"
	"github.com/blokeley/montecarlo/internal/tolerance"
	"github.com/blokeley/montecarlo/internal/viz"
)

var (
	dataDir    string
	trials     int
	batch      int
	tol        float64
	bestEffort bool
	maxBatches int
	seed       int64
	bins       int
	inputs     []string
	lsl        float64
	usl        float64
	configFile string
	preset     string
	frameRate  int
	// Sweep flags
	sweepParam     string
	sweepFrom      float64
	sweepTo        float64
	sweepSteps     int
	sweepObjective string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "monte carlo simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".montecarlo", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot convergence curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "plot output histogram",
		Args:  cobra.ExactArgs(1),
		RunE:  histRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export convergence trace as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live convergence view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one distribution parameter over a grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep, input.param (e.g. velocity.std)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "sweep start value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "sweep end value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of grid steps")
	sweepCmd.Flags().StringVar(&sweepObjective, "objective", "stderr", "objective: stderr, variance or mean")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list built-in models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiment.NewRegistry().ListModels() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, histCmd, exportJSONCmd, exportCSVCmd, liveCmd, sweepCmd, presetsCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "sample count (fixed-count rule)")
	cmd.Flags().IntVar(&batch, "batch", 0, "batch size (default: all trials in one pass)")
	cmd.Flags().Float64Var(&tol, "tol", 0, "convergence tolerance on standard error (0 = fixed count)")
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "return partial result when convergence is not reached")
	cmd.Flags().IntVar(&maxBatches, "max-batches", 0, "batch budget for convergence runs")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&bins, "bins", config.DefaultBins, "histogram bin count (0 = no histogram)")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "input distribution, kind:param=value,... (repeatable)")
	cmd.Flags().Float64Var(&lsl, "lsl", math.NaN(), "lower specification limit for ppm reporting")
	cmd.Flags().Float64Var(&usl, "usl", math.NaN(), "upper specification limit for ppm reporting")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("trials") || cfg.Trials == 0 && cfg.Tolerance == 0 {
		cfg.Trials = trials
	}
	if cmd.Flags().Changed("batch") {
		cfg.Batch = batch
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tol
	}
	if cmd.Flags().Changed("best-effort") {
		cfg.BestEffort = bestEffort
	}
	if cmd.Flags().Changed("max-batches") {
		cfg.MaxBatches = maxBatches
	}
	if cmd.Flags().Changed("bins") {
		cfg.Bins = bins
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("lsl") && !math.IsNaN(lsl) {
		v := lsl
		cfg.LSL = &v
	}
	if cmd.Flags().Changed("usl") && !math.IsNaN(usl) {
		v := usl
		cfg.USL = &v
	}
	if len(inputs) > 0 {
		cfg.Inputs = nil
		for _, in := range inputs {
			parsed, err := config.ParseInput(in)
			if err != nil {
				return nil, err
			}
			cfg.Inputs = append(cfg.Inputs, parsed)
		}
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Seed, cfg.Tolerance, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.SampleCount)
	fmt.Printf("mean: %.6f\n", result.Stats.Mean)
	fmt.Printf("std dev: %.6f\n", result.Stats.StdDev)
	fmt.Printf("std error: %.6f\n", result.Stats.StdErr)
	if cfg.Tolerance > 0 {
		fmt.Printf("converged: %v\n", result.Converged)
	}

	if cfg.LSL != nil || cfg.USL != nil {
		lo, hi := math.NaN(), math.NaN()
		if cfg.LSL != nil {
			lo = *cfg.LSL
		}
		if cfg.USL != nil {
			hi = *cfg.USL
		}
		report := tolerance.Describe(result.Stats, result.Outputs, lo, hi)
		if !math.IsNaN(report.PPMBelow) {
			fmt.Printf("%.0f ppm below %g\n", report.PPMBelow, lo)
		}
		if !math.IsNaN(report.PPMAbove) {
			fmt.Printf("%.0f ppm above %g\n", report.PPMAbove, hi)
		}
	}

	if result.Hist != nil {
		fmt.Println()
		fmt.Println(viz.HistogramPlot(result.Hist.Bins()))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	// Live viewing wants many small batches, not one big pass.
	if cfg.Batch == 0 {
		cfg.Batch = 500
	}

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}
	run, err := exp.Start()
	if err != nil {
		return err
	}
	return viz.RunLive(run, cfg.Model, frameRate)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if sweepParam == "" {
		return fmt.Errorf("--param is required, e.g. --param velocity.std")
	}
	inputName, paramName, found := strings.Cut(sweepParam, ".")
	if !found {
		return fmt.Errorf("param %q: want input.param", sweepParam)
	}

	idx := -1
	for i, in := range cfg.Inputs {
		if in.Name == inputName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no input named %q in configuration", inputName)
	}

	reg := experiment.NewRegistry()
	grid := sweep.NewGrid([]string{sweepParam}, [][]float64{sweep.Range(sweepFrom, sweepTo, sweepSteps)})

	objective, err := objectiveFunc(sweepObjective)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		trial := *cfg
		trial.Inputs = make([]config.InputConfig, len(cfg.Inputs))
		copy(trial.Inputs, cfg.Inputs)
		in := trial.Inputs[idx]
		p := make(map[string]float64, len(in.Params))
		for k, v := range in.Params {
			p[k] = v
		}
		p[paramName] = params[sweepParam]
		trial.Inputs[idx] = config.InputConfig{Name: in.Name, Kind: in.Kind, Params: p}
		return experiment.FromConfig(reg, &trial)
	}

	bestParams, bestVal, points, err := grid.Search(context.Background(), build, objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", sweepParam, sweepObjective)
	for _, p := range points {
		fmt.Fprintf(w, "%.6f\t%.6f\n", p.Params[sweepParam], p.Value)
	}
	w.Flush()

	if bestParams != nil {
		fmt.Printf("\nbest: %s = %.6f (%s = %.6f)\n", sweepParam, bestParams[sweepParam], sweepObjective, bestVal)
	}
	return nil
}

func objectiveFunc(name string) (func(*mc.Result) float64, error) {
	switch name {
	case "stderr":
		return func(r *mc.Result) float64 { return r.Stats.StdErr }, nil
	case "variance":
		return func(r *mc.Result) float64 { return r.Stats.Variance }, nil
	case "mean":
		return func(r *mc.Result) float64 { return r.Stats.Mean }, nil
	}
	return nil, fmt.Errorf("unknown objective: %s", name)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSAMPLES\tMEAN\tSTD ERR\tCONVERGED\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.6f\t%.6f\t%v\t%s\n",
			run.ID, run.Model, run.SampleCount, run.Mean, run.StdErr,
			run.Converged, run.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadConvergence(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.ConvergencePlot(trace))
	fmt.Println()
	fmt.Println(viz.MeanPlot(trace))
	return nil
}

func histRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadHistogram(args[0])
	if err != nil {
		return err
	}
	bins := make([]stats.Bin, len(rows))
	for i, r := range rows {
		bins[i] = stats.Bin{Lo: r.Lo, Hi: r.Hi, Count: r.Count}
	}
	fmt.Println(viz.HistogramPlot(bins))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadConvergence(args[0])
	if err != nil {
		return err
	}
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	if err := w.Write([]string{"n", "mean", "std_err"}); err != nil {
		return err
	}
	for _, p := range trace {
		row := []string{
			strconv.FormatInt(p.N, 10),
			strconv.FormatFloat(p.Mean, 'f', 6, 64),
			strconv.FormatFloat(p.StdErr, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
