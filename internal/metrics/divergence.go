package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/firesim/internal/grid"
)

// Divergence is the central-difference divergence of the velocity field at
// (x, y, z). Neighbours are clamped to the extent and solid neighbours
// contribute zero velocity, as in the pressure stage.
func Divergence(g *grid.Grid, x, y, z int) float64 {
	ext := g.Extent()
	vel := func(x, y, z int) mgl32.Vec3 {
		x = min(max(x, 0), ext.X-1)
		y = min(max(y, 0), ext.Y-1)
		z = min(max(z, 0), ext.Z-1)
		if g.IsSolid(x, y, z) {
			return mgl32.Vec3{}
		}
		return g.VelocityDensity.At(x, y, z).Vec3()
	}

	dx := vel(x+1, y, z)[0] - vel(x-1, y, z)[0]
	dy := vel(x, y+1, z)[1] - vel(x, y-1, z)[1]
	dz := vel(x, y, z+1)[2] - vel(x, y, z-1)[2]
	return 0.5 * float64(dx+dy+dz)
}

// MaxDivergence is the largest |∇·v| over fluid voxels whose six
// neighbours are all inside the grid and not solid.
type MaxDivergence struct{ gauge }

func NewMaxDivergence() *MaxDivergence {
	return &MaxDivergence{gauge{name: "max_divergence"}}
}

func (m *MaxDivergence) Observe(g *grid.Grid, t float64) {
	ext := g.Extent()
	m.value = 0
	for z := 1; z < ext.Z-1; z++ {
		for y := 1; y < ext.Y-1; y++ {
			for x := 1; x < ext.X-1; x++ {
				if !unobstructed(g, x, y, z) {
					continue
				}
				m.value = math.Max(m.value, math.Abs(Divergence(g, x, y, z)))
			}
		}
	}
}

func unobstructed(g *grid.Grid, x, y, z int) bool {
	return !g.IsSolid(x, y, z) &&
		!g.IsSolid(x-1, y, z) && !g.IsSolid(x+1, y, z) &&
		!g.IsSolid(x, y-1, z) && !g.IsSolid(x, y+1, z) &&
		!g.IsSolid(x, y, z-1) && !g.IsSolid(x, y, z+1)
}
