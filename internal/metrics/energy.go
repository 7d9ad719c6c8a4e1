package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/firesim/internal/grid"
)

// KineticEnergy is ½·Σ|v|² over all voxels, taking unit mass per voxel.
type KineticEnergy struct{ gauge }

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{gauge{name: "kinetic_energy"}}
}

func (m *KineticEnergy) Observe(g *grid.Grid, t float64) {
	var sum float64
	for _, c := range []int{grid.VelX, grid.VelY, grid.VelZ} {
		v := g.VelocityDensity.Channel(c)
		sum += floats.Dot(v, v)
	}
	m.value = 0.5 * sum
}
