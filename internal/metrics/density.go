package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/firesim/internal/grid"
)

// TotalDensity is the summed smoke density over the grid.
type TotalDensity struct{ gauge }

func NewTotalDensity() *TotalDensity {
	return &TotalDensity{gauge{name: "total_density"}}
}

func (m *TotalDensity) Observe(g *grid.Grid, t float64) {
	m.value = floats.Sum(g.VelocityDensity.Channel(grid.Density))
}

// ReactionMass is the summed reaction coordinate, a proxy for how much fuel
// is burning.
type ReactionMass struct{ gauge }

func NewReactionMass() *ReactionMass {
	return &ReactionMass{gauge{name: "reaction_mass"}}
}

func (m *ReactionMass) Observe(g *grid.Grid, t float64) {
	m.value = floats.Sum(g.PressureTempPhiReaction.Channel(grid.Reaction))
}

type PeakTemperature struct{ gauge }

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{gauge{name: "peak_temperature"}}
}

func (m *PeakTemperature) Observe(g *grid.Grid, t float64) {
	m.value = floats.Max(g.PressureTempPhiReaction.Channel(grid.Temperature))
}
