package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/firesim/internal/analysis"
	"github.com/san-kum/firesim/internal/automation"
	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/config"
	"github.com/san-kum/firesim/internal/experiment"
	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
	"github.com/san-kum/firesim/internal/metrics"
	"github.com/san-kum/firesim/internal/sim"
	"github.com/san-kum/firesim/internal/storage"
	"github.com/san-kum/firesim/internal/tui"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.NewRegistry(), logger)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s (%s, %d frames)...\n", cfg.Name, cfg.Extent(), cfg.Frames)

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	backendName := exp.Simulator().Backend().Name()
	fmt.Fprintf(out, "completed in %v on %s\n", result.Duration.Round(time.Millisecond), backendName)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, backendName, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	names := metrics.Names()
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = fmt.Sprintf("%.6g", result.Metrics[name])
	}
	fmt.Fprintln(out, tui.Summary("metrics", names, values))

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tSIZE\tFRAMES\tDT\tBACKEND")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%dx%d\t%d\t%.4f\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size[0], run.Size[1], run.Size[2],
			run.Frames,
			run.Dt,
			run.Backend,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	names := metrics.Names()
	if len(args) > 1 {
		if _, ok := series[args[1]]; !ok {
			return fmt.Errorf("unknown metric: %s", args[1])
		}
		names = []string{args[1]}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scene: %s\n", meta.Scene)
	fmt.Fprintf(out, "frames: %d\n\n", len(times))

	for _, name := range names {
		data, ok := series[name]
		if !ok {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	metric := "reaction_mass"
	if len(args) > 1 {
		metric = args[1]
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	data, ok := series[metric]
	if !ok || len(data) < 2 {
		return fmt.Errorf("no data for metric %s", metric)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "metric: %s\n\n", metric)

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", metric)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	s := analysis.Summarize(data, meta.Dt)
	fmt.Fprintf(out, "mean: %.6g  stddev: %.6g  range: [%.6g, %.6g]\n", s.Mean, s.StdDev, s.Min, s.Max)
	fmt.Fprintf(out, "dominant frequency: %.3f\n", s.DominantHz)
	if s.DominantHz > 0 {
		fmt.Fprintf(out, "period: %.3f\n", 1.0/s.DominantHz)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if outFile == "" {
		return st.ExportJSON(cmd.OutOrStdout(), args[0])
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := st.ExportJSON(f, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSCENE\tSIZE\tFRAMES\tBACKEND")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%dx%dx%d\t%d\t%s\n", name, p.Scene, p.Size[0], p.Size[1], p.Size[2], p.Frames, p.Backend)
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "scenes:")
	for _, name := range experiment.NewRegistry().ListScenes() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

func benchKernel(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 32, 48}
	backends := []string{"serial", "cpu"}
	params := kernel.DefaultParams()
	registry := experiment.NewRegistry()
	hot, _ := registry.GetScene("hot-pocket")

	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d frames per size\n\n", benchFrames)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tBACKEND\tWORKERS\tTIME\tFRAMES/SEC\tVOXELS/SEC")

	for _, n := range sizes {
		for _, name := range backends {
			b, err := compute.Get(name)
			if err != nil {
				return err
			}

			ext := grid.Extent{X: n, Y: n, Z: n}
			s := sim.New(b, hot, sim.WithLogger(logger))
			start := time.Now()
			if _, err := s.Run(ctx, sim.Config{Extent: ext, Frames: benchFrames, Params: params}); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fps := float64(benchFrames) / elapsed.Seconds()
			fmt.Fprintf(w, "%d³\t%s\t%d\t%v\t%.1f\t%.3g\n",
				n, name, b.Workers(), elapsed.Round(time.Millisecond), fps, fps*float64(ext.Len()))
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sc, err := registry.GetScene(cfg.Scene)
	if err != nil {
		return err
	}
	b, err := registry.GetBackend(cfg.Backend)
	if err != nil {
		return err
	}

	session, err := kernel.NewSession(cfg.Extent(), b)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Debug("live monitor", zap.String("scene", cfg.Scene), zap.Stringer("extent", cfg.Extent()))
	return tui.Run(ctx, tui.NewMonitor(cfg.Name, session, cfg.KernelParams(), sc))
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	outcomes, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if save {
		if err := st.Init(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario %s: %d runs\n", scenario.Name, len(outcomes))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSCENE\tFRAMES\tTOTAL_DENSITY\tPEAK_TEMP\tID")
	for _, o := range outcomes {
		runID := "-"
		if save {
			runID, err = st.Save(o.Config, o.Config.Backend, o.Result)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%.4g\t%s\n",
			o.Name, o.Config.Scene, o.Result.Frames,
			o.Result.Metrics["total_density"], o.Result.Metrics["peak_temperature"], runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Workers:   workers,
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	names := metrics.Names()
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprint(w, sweepParam, "\tSTABLE")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%v", r.ParamValue, r.Stable)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", trials)
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		ParamName:    sweepParam,
		Perturbation: perturbation,
		NumTrials:    trials,
		Workers:      workers,
		Seed:         seed,
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, mc, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	names := metrics.Names()
	sort.Strings(names)

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "TRIAL\t", sweepParam, "\tSTABLE")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.4g\t%v", r.TrialID, r.ParamValue, r.Stable)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Fprintf(out, "\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}
