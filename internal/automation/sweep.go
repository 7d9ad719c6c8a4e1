package automation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/firesim/internal/config"
	"github.com/san-kum/firesim/internal/experiment"
	"github.com/san-kum/firesim/internal/sim"
)

// ParameterSweep runs a configuration across evenly spaced values of one
// kernel parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Workers   int
}

// SweepResult holds the final metrics of one sweep point
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Stable     bool
}

func (s *ParameterSweep) values() []float64 {
	if s.NumSteps == 1 {
		return []float64{s.ParamMin}
	}
	vals := make([]float64, s.NumSteps)
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	for i := range vals {
		vals[i] = s.ParamMin + float64(i)*step
	}
	return vals
}

// RunSweep executes the sweep points concurrently as an ensemble.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *zap.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	values := sweep.values()
	cfgs := make([]*config.Config, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, v); err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	results, err := runEnsemble(ctx, cfgs, sweep.Workers, registry, logger)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(results))
	for i, r := range results {
		out[i] = SweepResult{
			ParamValue: values[i],
			Metrics:    r.Metrics,
			Stable:     r.Final.IsFinite(),
		}
		logger.Debug("sweep point", zap.String("param", sweep.ParamName), zap.Float64("value", values[i]))
	}
	return out, nil
}

// MonteCarloConfig perturbs one kernel parameter uniformly around its base
// value.
type MonteCarloConfig struct {
	Base         *config.Config
	ParamName    string
	Perturbation float64
	NumTrials    int
	Workers      int
	Seed         int64
}

// MonteCarloResult holds the outcome of one randomized trial
type MonteCarloResult struct {
	TrialID    int
	ParamValue float64
	Metrics    map[string]float64
	Stable     bool // Did the grid stay finite?
}

// RunMonteCarlo executes randomized trials as an ensemble.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, registry *experiment.Registry, logger *zap.Logger) ([]MonteCarloResult, error) {
	base, ok := mc.Base.KernelParams().Values()[mc.ParamName]
	if !ok {
		return nil, fmt.Errorf("unknown parameter: %s", mc.ParamName)
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	values := make([]float64, mc.NumTrials)
	cfgs := make([]*config.Config, mc.NumTrials)
	for i := range cfgs {
		values[i] = base + (rng.Float64()-0.5)*2*mc.Perturbation
		cfg := mc.Base.Clone()
		if err := cfg.SetParam(mc.ParamName, values[i]); err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	results, err := runEnsemble(ctx, cfgs, mc.Workers, registry, logger)
	if err != nil {
		return nil, err
	}

	out := make([]MonteCarloResult, len(results))
	for i, r := range results {
		out[i] = MonteCarloResult{
			TrialID:    i,
			ParamValue: values[i],
			Metrics:    r.Metrics,
			Stable:     r.Final.IsFinite(),
		}
	}
	return out, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

// runEnsemble validates every config and runs them through a sim.Ensemble.
// All configs must name the same scene and backend as the first.
func runEnsemble(ctx context.Context, cfgs []*config.Config, workers int, registry *experiment.Registry, logger *zap.Logger) ([]*sim.Result, error) {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	simCfgs := make([]sim.Config, len(cfgs))
	for i, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		simCfgs[i] = experiment.SimConfig(cfg)
	}
	if len(cfgs) == 0 {
		return nil, nil
	}

	if _, err := registry.GetScene(cfgs[0].Scene); err != nil {
		return nil, err
	}
	backend, err := registry.GetBackend(cfgs[0].Backend)
	if err != nil {
		return nil, err
	}

	factory := func() *sim.Simulator {
		scene, _ := registry.GetScene(cfgs[0].Scene)
		s := sim.New(backend, scene, sim.WithLogger(logger))
		for _, m := range registry.DefaultMetrics() {
			s.AddMetric(m)
		}
		return s
	}

	return sim.NewEnsemble(factory, workers).Run(ctx, simCfgs)
}
