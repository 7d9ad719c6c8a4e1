package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/firesim/internal/config"
	"github.com/san-kum/firesim/internal/experiment"
	"github.com/san-kum/firesim/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is a single run in a scenario. Unset fields fall back to the
// preset, or to the default configuration when no preset is named.
type ScenarioRun struct {
	Preset  string             `yaml:"preset"`
	Scene   string             `yaml:"scene"`
	Backend string             `yaml:"backend"`
	Size    [3]int             `yaml:"size"`
	Frames  int                `yaml:"frames"`
	Params  map[string]float64 `yaml:"params"`
	SaveAs  string             `yaml:"save_as"`
}

// Outcome pairs a finished run with the configuration that produced it.
type Outcome struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// Config resolves the run against its preset and overrides.
func (r ScenarioRun) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if r.Preset != "" {
		cfg = config.GetPreset(r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", r.Preset)
		}
	}

	if r.Scene != "" {
		cfg.Scene = r.Scene
	}
	if r.Backend != "" {
		cfg.Backend = r.Backend
	}
	if r.Size != [3]int{} {
		cfg.Size = r.Size
	}
	if r.Frames > 0 {
		cfg.Frames = r.Frames
	}
	if r.SaveAs != "" {
		cfg.Name = r.SaveAs
	}
	for name, v := range r.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return cfg, nil
}

// RunScenario executes all runs in order and stops at the first failure,
// returning the outcomes completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *zap.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		cfg, err := run.Config()
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		logger.Info("scenario run",
			zap.String("scenario", scenario.Name),
			zap.Int("run", i+1),
			zap.Int("of", len(scenario.Runs)),
			zap.String("scene", cfg.Scene),
		)

		exp := experiment.New(cfg, registry, logger)
		if err := exp.Setup(); err != nil {
			return outcomes, fmt.Errorf("run %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		outcomes = append(outcomes, Outcome{Name: cfg.Name, Config: cfg, Result: result})
	}

	return outcomes, nil
}
