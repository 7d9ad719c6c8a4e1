package kernel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

// project subtracts the pressure gradient from velocity. Solid voxels lose
// all velocity; a solid neighbour blocks flow along its axis.
func (k *pipeline) project(v *voxel, co, pt mgl32.Vec4, vd *mgl32.Vec4) {
	if isSolid(co) {
		*vd = mgl32.Vec4{0, 0, 0, vd[grid.Density]}
		return
	}

	p := k.neighbourPressures(v)
	c := pt[grid.Pressure]
	mask := mgl32.Vec3{1, 1, 1}

	for i := range p {
		if v.solid[i] {
			p[i] = c
			mask[i/2] = 0
		}
	}

	grad := mgl32.Vec3{p[right] - p[left], p[top] - p[bottom], p[up] - p[down]}.Mul(0.5)
	vel := vd.Vec3().Sub(grad)

	*vd = mgl32.Vec4{vel[0] * mask[0], vel[1] * mask[1], vel[2] * mask[2], vd[grid.Density]}
}
