package kernel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

var confinementEpsilon = mgl32.Vec3{0.001, 0.001, 0.001}

// curl computes the central-difference curl of the source velocity field.
func (k *pipeline) curl(v *voxel) mgl32.Vec3 {
	vel := k.src.VelocityDensity.Cells()
	l := vel[v.nb[left]].Vec3()
	r := vel[v.nb[right]].Vec3()
	b := vel[v.nb[bottom]].Vec3()
	t := vel[v.nb[top]].Vec3()
	d := vel[v.nb[down]].Vec3()
	u := vel[v.nb[up]].Vec3()

	return mgl32.Vec3{
		(t[2] - b[2]) - (u[1] - d[1]),
		(u[0] - d[0]) - (r[2] - l[2]),
		(r[1] - l[1]) - (t[0] - b[0]),
	}.Mul(0.5)
}

// applyVorticityConfinement stores the local curl and pushes velocity along
// eta × ω. Eta is taken from the committed CurlObstacles buffer, which after
// a full step holds (div, 0, 0, flag) rather than curl, so in practice it
// follows the gradient of the neighbours' |divergence|.
func (k *pipeline) applyVorticityConfinement(v *voxel, co, vd *mgl32.Vec4) {
	omega := k.curl(v)
	*co = omega.Vec4(co[grid.Obstacle])

	curls := k.src.CurlObstacles.Cells()
	omegaL := curls[v.nb[left]].Vec3().Len()
	omegaR := curls[v.nb[right]].Vec3().Len()
	omegaB := curls[v.nb[bottom]].Vec3().Len()
	omegaT := curls[v.nb[top]].Vec3().Len()
	omegaD := curls[v.nb[down]].Vec3().Len()
	omegaU := curls[v.nb[up]].Vec3().Len()

	eta := mgl32.Vec3{omegaR - omegaL, omegaT - omegaB, omegaU - omegaD}.Mul(0.5)
	eta = eta.Add(confinementEpsilon).Normalize()

	force := eta.Cross(omega).Mul(k.params.Dt * k.params.VorticityStrength)
	*vd = vd.Add(force.Vec4(0))
}
