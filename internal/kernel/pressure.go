package kernel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

// computeDivergence stores the velocity divergence in channel 0 of co.
// Solid neighbours contribute zero velocity.
func (k *pipeline) computeDivergence(v *voxel, co *mgl32.Vec4) {
	vel := k.src.VelocityDensity.Cells()
	var n [6]mgl32.Vec3
	for i, idx := range v.nb {
		if !v.solid[i] {
			n[i] = vel[idx].Vec3()
		}
	}

	div := 0.5 * ((n[right][0] - n[left][0]) + (n[top][1] - n[bottom][1]) + (n[up][2] - n[down][2]))
	*co = mgl32.Vec4{div, 0, 0, co[grid.Obstacle]}
}

// neighbourPressures reads the six face pressures from the source grid.
func (k *pipeline) neighbourPressures(v *voxel) [6]float32 {
	pt := k.src.PressureTempPhiReaction.Cells()
	var p [6]float32
	for i, idx := range v.nb {
		p[i] = pt[idx][grid.Pressure]
	}
	return p
}

// relaxPressure performs one Jacobi update of the local pressure against
// the cached neighbour pressures. A solid neighbour takes the current local
// value, which gives a zero pressure gradient across the wall.
func relaxPressure(v *voxel, neighbours [6]float32, divergence float32, pt *mgl32.Vec4) {
	c := pt[grid.Pressure]
	for i := range neighbours {
		if v.solid[i] {
			neighbours[i] = c
		}
	}
	n := neighbours
	pt[grid.Pressure] = (n[left] + n[right] + n[bottom] + n[top] + n[up] + n[down] - divergence) / 6
}

// solvePressure relaxes the local pressure Iterations times. Neighbour
// values are fetched once; the loop converges this voxel only, and the grid
// settles over successive timesteps.
func (k *pipeline) solvePressure(v *voxel, co mgl32.Vec4, pt *mgl32.Vec4) {
	neighbours := k.neighbourPressures(v)
	for i := 0; i < k.params.Iterations; i++ {
		relaxPressure(v, neighbours, co[grid.Divergence], pt)
	}
}
