package kernel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

// applyBuoyancy lifts voxels hotter than ambient; heavy smoke pulls back down.
func (k *pipeline) applyBuoyancy(vd *mgl32.Vec4, pt mgl32.Vec4) {
	t := pt[grid.Temperature]
	if t <= k.params.AmbientTemperature {
		return
	}
	d := vd[grid.Density]
	vd[grid.VelY] += k.params.Dt*(t-k.params.AmbientTemperature)*k.params.DensityBuoyancy - d*k.params.DensityWeight
}

// applyImpulse adds a Gaussian splat centred on InputPos to one channel.
func (k *pipeline) applyImpulse(v *voxel, amount float32, channel int, pt *mgl32.Vec4) {
	pos := mgl32.Vec3{
		v.pos[0]/k.size[0] - k.params.InputPos[0],
		v.pos[1]/k.size[1] - k.params.InputPos[1],
		v.pos[2]/k.size[2] - k.params.InputPos[2],
	}

	mag := pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2]
	rad2 := k.params.InputRadius * k.params.InputRadius

	pt[channel] += float32(math.Exp(float64(-mag/rad2))) * amount * k.params.Dt
}

// applyExtinguishment turns dying reaction into smoke density.
func (k *pipeline) applyExtinguishment(pt mgl32.Vec4, vd *mgl32.Vec4) {
	reaction := pt[grid.Reaction]
	if reaction > 0 && reaction < k.params.ReactionExtinguishment {
		vd[grid.Density] += k.params.DensityAmount * reaction
	}
}
