package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/firesim/internal/config"
	"github.com/san-kum/firesim/internal/kernel"
)

var (
	dataDir string
	verbose bool
	logger  = zap.NewNop()

	// Config file and preset
	configFile string
	preset     string
	// Overrides applied on top of the resolved config
	scene      string
	size       []int
	dt         float64
	iterations int
	backend    string
	frames     int
	save       bool
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	workers    int
	// Monte Carlo
	perturbation float64
	trials       int
	seed         int64
	// Export
	outFile string
	// Bench
	benchFrames int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "firesim",
		Short:        "voxel fire and smoke simulation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".firesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "store the run under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [metric]",
		Short: "plot metric series of a run",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id] [metric]",
		Short: "flicker frequency analysis",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list initial-condition scenes",
		Args:  cobra.NoArgs,
		RunE:  listScenes,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the kernel across grid sizes and backends",
		Args:  cobra.NoArgs,
		RunE:  benchKernel,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 10, "frames per measurement")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live metrics",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", true, "store each run under the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one kernel parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "vorticity_strength", fmt.Sprintf("parameter to sweep %v", kernel.ParamNames()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 2, "concurrent runs")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "randomized trials around one kernel parameter",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addConfigFlags(monteCarloCmd)
	monteCarloCmd.Flags().StringVar(&sweepParam, "param", "vorticity_strength", fmt.Sprintf("parameter to perturb %v", kernel.ParamNames()))
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.5, "maximum deviation from the base value")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 8, "number of trials")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 2, "concurrent runs")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportJSONCmd,
		presetsCmd, scenesCmd, benchCmd, liveCmd, scenarioCmd, sweepCmd, monteCarloCmd)

	return rootCmd
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scene, "scene", config.DefaultScene, "initial-condition scene")
	cmd.Flags().IntSliceVar(&size, "size", []int{config.DefaultSize, config.DefaultSize, config.DefaultSize}, "grid size x,y,z")
	cmd.Flags().Float64Var(&dt, "dt", 0.1, "timestep")
	cmd.Flags().IntVar(&iterations, "iterations", 10, "pressure iterations per voxel")
	cmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "compute backend (auto, cpu, serial)")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Scene = scene
	}
	if flags.Changed("size") {
		if len(size) != 3 {
			return nil, fmt.Errorf("size needs three values, got %v", size)
		}
		cfg.Size = [3]int{size[0], size[1], size[2]}
	}
	if flags.Changed("dt") {
		cfg.Params.Dt = dt
	}
	if flags.Changed("iterations") {
		cfg.Params.Iterations = iterations
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	return cfg, cfg.Validate()
}
