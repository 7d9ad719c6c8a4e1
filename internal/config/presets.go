package config

import "sort"

// Presets are named starting points. Each is a complete Config; use Clone
// before modifying one.
var Presets = map[string]*Config{
	"campfire": {
		Name: "campfire", Size: [3]int{32, 48, 32}, Frames: 300, Backend: "auto", Scene: "fuel-pool",
		Params: ParamsConfig{
			Dt: 0.1, Iterations: 10, VorticityStrength: 1.5,
			DensityAmount: 1, DensityDissipation: 0.995, DensityBuoyancy: 1, DensityWeight: 0.0125,
			TemperatureAmount: 10, TemperatureDissipation: 0.99,
			ReactionAmount: 1, ReactionDecay: 0.003, ReactionExtinguishment: 0.01,
			VelocityDissipation: 0.995, AmbientTemperature: 0,
			InputRadius: 0.08, InputPos: [3]float64{0.5, 0.1, 0.5},
		},
	},
	"torch": {
		Name: "torch", Size: [3]int{24, 64, 24}, Frames: 400, Backend: "auto", Scene: "ambient",
		Params: ParamsConfig{
			Dt: 0.1, Iterations: 10, VorticityStrength: 2,
			DensityAmount: 0.5, DensityDissipation: 0.99, DensityBuoyancy: 1.5, DensityWeight: 0.01,
			TemperatureAmount: 15, TemperatureDissipation: 0.995,
			ReactionAmount: 1.5, ReactionDecay: 0.002, ReactionExtinguishment: 0.01,
			VelocityDissipation: 0.998, AmbientTemperature: 0,
			InputRadius: 0.03, InputPos: [3]float64{0.5, 0.08, 0.5},
		},
	},
	"smoke": {
		Name: "smoke", Size: [3]int{32, 32, 32}, Frames: 200, Backend: "auto", Scene: "hot-pocket",
		Params: ParamsConfig{
			Dt: 0.1, Iterations: 20, VorticityStrength: 0.5,
			DensityAmount: 2, DensityDissipation: 0.999, DensityBuoyancy: 0.8, DensityWeight: 0.05,
			TemperatureAmount: 4, TemperatureDissipation: 0.99,
			ReactionAmount: 0.3, ReactionDecay: 0.01, ReactionExtinguishment: 0.05,
			VelocityDissipation: 0.99, AmbientTemperature: 0,
			InputRadius: 0.1, InputPos: [3]float64{0.5, 0.15, 0.5},
		},
	},
	"still": {
		Name: "still", Size: [3]int{16, 16, 16}, Frames: 50, Backend: "serial", Scene: "still",
		Params: ParamsConfig{
			Dt: 0.1, Iterations: 10,
			DensityDissipation: 1, TemperatureDissipation: 1, VelocityDissipation: 1,
			InputRadius: 0.04, InputPos: [3]float64{0.5, 0.1, 0.5},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
