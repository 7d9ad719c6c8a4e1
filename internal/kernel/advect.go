package kernel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

// backtrace is a single first-order semi-Lagrangian step.
func backtrace(pos, vel mgl32.Vec3, dt float32) mgl32.Vec3 {
	return mgl32.Vec3{
		pos[0] - float32(dt*vel[0]),
		pos[1] - float32(dt*vel[1]),
		pos[2] - float32(dt*vel[2]),
	}
}

func (k *pipeline) advectVelocityDensity(v *voxel, co mgl32.Vec4, vd *mgl32.Vec4) {
	if isSolid(co) {
		*vd = mgl32.Vec4{}
		return
	}

	from := backtrace(v.pos, vd.Vec3(), k.params.Dt)
	vel := grid.TrilinearVec3(k.src.VelocityDensity, from).Mul(k.params.VelocityDissipation)
	d := grid.Trilinear(k.src.VelocityDensity, from, grid.Density) * k.params.DensityDissipation

	*vd = vel.Vec4(d)
}

// advectTemperatureReaction backtraces along the velocity already advected
// for this voxel. Pressure and phi pass through.
func (k *pipeline) advectTemperatureReaction(v *voxel, co, vd mgl32.Vec4, pt *mgl32.Vec4) {
	if isSolid(co) {
		pt[grid.Temperature] = 0
		pt[grid.Reaction] = 0
		return
	}

	from := backtrace(v.pos, vd.Vec3(), k.params.Dt)
	cell := grid.TrilinearCell(k.src.PressureTempPhiReaction, from)

	pt[grid.Temperature] = cell[grid.Temperature] * k.params.TemperatureDissipation
	pt[grid.Reaction] = max(0, cell[grid.Reaction]-k.params.ReactionDecay)
}
