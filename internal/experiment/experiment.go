package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/firesim/internal/config"
	"github.com/san-kum/firesim/internal/sim"
)

// Experiment wires a configuration to a ready simulator: scene, backend and
// the default metric set.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	logger    *zap.Logger
	simulator *sim.Simulator
}

func New(cfg *config.Config, registry *Registry, logger *zap.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	scene, err := e.registry.GetScene(e.cfg.Scene)
	if err != nil {
		return err
	}
	backend, err := e.registry.GetBackend(e.cfg.Backend)
	if err != nil {
		return err
	}

	e.simulator = sim.New(backend, scene, sim.WithLogger(e.logger.With(zap.String("run", e.cfg.Name))))
	for _, m := range e.registry.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, SimConfig(e.cfg))
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// SimConfig converts a run configuration to its simulator form.
func SimConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Extent:        cfg.Extent(),
		Frames:        cfg.Frames,
		Params:        cfg.KernelParams(),
		ValidateState: cfg.ValidateState,
	}
}
