package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
)

const (
	DefaultSize    = 32
	DefaultFrames  = 200
	DefaultBackend = "auto"
	DefaultScene   = "still"
)

// ErrInvalidConfig indicates a configuration that cannot be run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name          string       `yaml:"name"`
	Size          [3]int       `yaml:"size"`
	Frames        int          `yaml:"frames"`
	Backend       string       `yaml:"backend"`
	Scene         string       `yaml:"scene"`
	ValidateState bool         `yaml:"validate_state"`
	Params        ParamsConfig `yaml:"params"`
}

// ParamsConfig is the YAML form of kernel.Params.
type ParamsConfig struct {
	Dt                     float64    `yaml:"dt"`
	Iterations             int        `yaml:"iterations"`
	VorticityStrength      float64    `yaml:"vorticity_strength"`
	DensityAmount          float64    `yaml:"density_amount"`
	DensityDissipation     float64    `yaml:"density_dissipation"`
	DensityBuoyancy        float64    `yaml:"density_buoyancy"`
	DensityWeight          float64    `yaml:"density_weight"`
	TemperatureAmount      float64    `yaml:"temperature_amount"`
	TemperatureDissipation float64    `yaml:"temperature_dissipation"`
	ReactionAmount         float64    `yaml:"reaction_amount"`
	ReactionDecay          float64    `yaml:"reaction_decay"`
	ReactionExtinguishment float64    `yaml:"reaction_extinguishment"`
	VelocityDissipation    float64    `yaml:"velocity_dissipation"`
	AmbientTemperature     float64    `yaml:"ambient_temperature"`
	InputRadius            float64    `yaml:"input_radius"`
	InputPos               [3]float64 `yaml:"input_pos"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:    "default",
		Size:    [3]int{DefaultSize, DefaultSize, DefaultSize},
		Frames:  DefaultFrames,
		Backend: DefaultBackend,
		Scene:   DefaultScene,
		Params:  ParamsFrom(kernel.DefaultParams()),
	}
}

func ParamsFrom(p kernel.Params) ParamsConfig {
	return ParamsConfig{
		Dt:                     float64(p.Dt),
		Iterations:             p.Iterations,
		VorticityStrength:      float64(p.VorticityStrength),
		DensityAmount:          float64(p.DensityAmount),
		DensityDissipation:     float64(p.DensityDissipation),
		DensityBuoyancy:        float64(p.DensityBuoyancy),
		DensityWeight:          float64(p.DensityWeight),
		TemperatureAmount:      float64(p.TemperatureAmount),
		TemperatureDissipation: float64(p.TemperatureDissipation),
		ReactionAmount:         float64(p.ReactionAmount),
		ReactionDecay:          float64(p.ReactionDecay),
		ReactionExtinguishment: float64(p.ReactionExtinguishment),
		VelocityDissipation:    float64(p.VelocityDissipation),
		AmbientTemperature:     float64(p.AmbientTemperature),
		InputRadius:            float64(p.InputRadius),
		InputPos:               [3]float64{float64(p.InputPos[0]), float64(p.InputPos[1]), float64(p.InputPos[2])},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Extent() grid.Extent {
	return grid.Extent{X: c.Size[0], Y: c.Size[1], Z: c.Size[2]}
}

func (c *Config) KernelParams() kernel.Params {
	p := c.Params
	return kernel.Params{
		Dt:                     float32(p.Dt),
		Iterations:             p.Iterations,
		VorticityStrength:      float32(p.VorticityStrength),
		DensityAmount:          float32(p.DensityAmount),
		DensityDissipation:     float32(p.DensityDissipation),
		DensityBuoyancy:        float32(p.DensityBuoyancy),
		DensityWeight:          float32(p.DensityWeight),
		TemperatureAmount:      float32(p.TemperatureAmount),
		TemperatureDissipation: float32(p.TemperatureDissipation),
		ReactionAmount:         float32(p.ReactionAmount),
		ReactionDecay:          float32(p.ReactionDecay),
		ReactionExtinguishment: float32(p.ReactionExtinguishment),
		VelocityDissipation:    float32(p.VelocityDissipation),
		AmbientTemperature:     float32(p.AmbientTemperature),
		InputRadius:            float32(p.InputRadius),
		InputPos:               mgl32.Vec3{float32(p.InputPos[0]), float32(p.InputPos[1]), float32(p.InputPos[2])},
	}
}

// SetParam assigns a kernel parameter by its snake_case name.
func (c *Config) SetParam(name string, v float64) error {
	p := c.KernelParams()
	if err := p.Set(name, v); err != nil {
		return err
	}
	c.Params = ParamsFrom(p)
	return nil
}

func (c *Config) Validate() error {
	if err := c.Extent().Validate(); err != nil {
		return err
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, c.Frames)
	}
	return c.KernelParams().Validate()
}

// Clone returns a deep copy; Config holds only values.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
