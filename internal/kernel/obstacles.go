package kernel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/grid"
)

// classifyObstacles flags the one-voxel shell on every face of the grid as
// solid and clears the flag elsewhere. The curl channels are left alone.
func classifyObstacles(ext grid.Extent, v *voxel, co *mgl32.Vec4) {
	var obstacle float32
	if v.x-1 < 0 || v.x+1 > ext.X-1 {
		obstacle = 1
	}
	if v.y-1 < 0 || v.y+1 > ext.Y-1 {
		obstacle = 1
	}
	if v.z-1 < 0 || v.z+1 > ext.Z-1 {
		obstacle = 1
	}
	co[grid.Obstacle] = obstacle
}

// ClassifyObstacles runs the classifier over a whole grid in place.
func ClassifyObstacles(g *grid.Grid) {
	ext := g.Extent()
	cells := g.CurlObstacles.Cells()
	for i := range cells {
		x, y, z := ext.Coords(i)
		v := voxel{x: x, y: y, z: z}
		classifyObstacles(ext, &v, &cells[i])
	}
}
