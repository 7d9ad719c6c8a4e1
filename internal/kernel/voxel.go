package kernel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

// Face neighbour slots, in the order the stencils consume them.
const (
	left = iota
	right
	bottom
	top
	down
	up
)

// voxel is the per-unit view of one cell: its coordinates and the flat
// indices of its six face neighbours, clamped into the grid. Neighbour
// obstacle flags are read once from the source grid.
type voxel struct {
	index   int
	x, y, z int
	pos     mgl32.Vec3
	nb      [6]int
	solid   [6]bool
}

func newVoxel(src *grid.Grid, index int) voxel {
	ext := src.Extent()
	x, y, z := ext.Coords(index)
	v := voxel{
		index: index,
		x:     x,
		y:     y,
		z:     z,
		pos:   mgl32.Vec3{float32(x), float32(y), float32(z)},
	}
	v.nb[left] = ext.Index(max(0, x-1), y, z)
	v.nb[right] = ext.Index(min(ext.X-1, x+1), y, z)
	v.nb[bottom] = ext.Index(x, max(0, y-1), z)
	v.nb[top] = ext.Index(x, min(ext.Y-1, y+1), z)
	v.nb[down] = ext.Index(x, y, max(0, z-1))
	v.nb[up] = ext.Index(x, y, min(ext.Z-1, z+1))

	for i, n := range v.nb {
		nx, ny, nz := ext.Coords(n)
		v.solid[i] = isSolid(grid.Floor(src.CurlObstacles, mgl32.Vec3{float32(nx), float32(ny), float32(nz)}))
	}
	return v
}

func isSolid(co mgl32.Vec4) bool {
	return co[grid.Obstacle] > grid.SolidThreshold
}
