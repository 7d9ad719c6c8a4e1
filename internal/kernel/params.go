package kernel

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Params are the per-timestep simulation constants. The host may change
// them between steps (Dt and InputPos typically move every frame).
type Params struct {
	Dt                     float32
	Iterations             int
	VorticityStrength      float32
	DensityAmount          float32
	DensityDissipation     float32
	DensityBuoyancy        float32
	DensityWeight          float32
	TemperatureAmount      float32
	TemperatureDissipation float32
	ReactionAmount         float32
	ReactionDecay          float32
	ReactionExtinguishment float32
	VelocityDissipation    float32
	AmbientTemperature     float32
	InputRadius            float32
	// InputPos is the impulse centre in grid-relative [0,1]³ coordinates.
	InputPos mgl32.Vec3
}

// DefaultParams mirrors the values the fire effect ships with.
func DefaultParams() Params {
	return Params{
		Dt:                     0.1,
		Iterations:             10,
		VorticityStrength:      1.0,
		DensityAmount:          1.0,
		DensityDissipation:     0.999,
		DensityBuoyancy:        1.0,
		DensityWeight:          0.0125,
		TemperatureAmount:      10.0,
		TemperatureDissipation: 0.995,
		ReactionAmount:         1.0,
		ReactionDecay:          0.001,
		ReactionExtinguishment: 0.01,
		VelocityDissipation:    0.995,
		AmbientTemperature:     0.0,
		InputRadius:            0.04,
		InputPos:               mgl32.Vec3{0.5, 0.1, 0.5},
	}
}

func (p Params) Validate() error {
	for name, v := range p.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, name)
		}
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidParams, p.Dt)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be non-negative, got %d", ErrInvalidParams, p.Iterations)
	}
	if p.InputRadius <= 0 {
		return fmt.Errorf("%w: input_radius must be positive, got %f", ErrInvalidParams, p.InputRadius)
	}
	return nil
}

// Values returns every parameter keyed by its snake_case name.
func (p Params) Values() map[string]float64 {
	return map[string]float64{
		"dt":                      float64(p.Dt),
		"iterations":              float64(p.Iterations),
		"vorticity_strength":      float64(p.VorticityStrength),
		"density_amount":          float64(p.DensityAmount),
		"density_dissipation":     float64(p.DensityDissipation),
		"density_buoyancy":        float64(p.DensityBuoyancy),
		"density_weight":          float64(p.DensityWeight),
		"temperature_amount":      float64(p.TemperatureAmount),
		"temperature_dissipation": float64(p.TemperatureDissipation),
		"reaction_amount":         float64(p.ReactionAmount),
		"reaction_decay":          float64(p.ReactionDecay),
		"reaction_extinguishment": float64(p.ReactionExtinguishment),
		"velocity_dissipation":    float64(p.VelocityDissipation),
		"ambient_temperature":     float64(p.AmbientTemperature),
		"input_radius":            float64(p.InputRadius),
		"input_x":                 float64(p.InputPos[0]),
		"input_y":                 float64(p.InputPos[1]),
		"input_z":                 float64(p.InputPos[2]),
	}
}

// ParamNames lists the names accepted by Set, sorted.
func ParamNames() []string {
	vals := Params{}.Values()
	names := make([]string, 0, len(vals))
	for k := range vals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Set assigns a parameter by name. Iterations is rounded to the nearest integer.
func (p *Params) Set(name string, v float64) error {
	f := float32(v)
	switch name {
	case "dt":
		p.Dt = f
	case "iterations":
		p.Iterations = int(math.Round(v))
	case "vorticity_strength":
		p.VorticityStrength = f
	case "density_amount":
		p.DensityAmount = f
	case "density_dissipation":
		p.DensityDissipation = f
	case "density_buoyancy":
		p.DensityBuoyancy = f
	case "density_weight":
		p.DensityWeight = f
	case "temperature_amount":
		p.TemperatureAmount = f
	case "temperature_dissipation":
		p.TemperatureDissipation = f
	case "reaction_amount":
		p.ReactionAmount = f
	case "reaction_decay":
		p.ReactionDecay = f
	case "reaction_extinguishment":
		p.ReactionExtinguishment = f
	case "velocity_dissipation":
		p.VelocityDissipation = f
	case "ambient_temperature":
		p.AmbientTemperature = f
	case "input_radius":
		p.InputRadius = f
	case "input_x":
		p.InputPos[0] = f
	case "input_y":
		p.InputPos[1] = f
	case "input_z":
		p.InputPos[2] = f
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}
