package experiment

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
)

// Still leaves the grid at rest.
type Still struct{}

func (Still) Name() string { return "still" }
func (Still) Seed(g *grid.Grid, p kernel.Params) {}

// Ambient fills the grid with the ambient temperature so buoyancy starts
// balanced.
type Ambient struct{}

func (Ambient) Name() string { return "ambient" }

func (Ambient) Seed(g *grid.Grid, p kernel.Params) {
	g.PressureTempPhiReaction.Fill(mgl32.Vec4{0, p.AmbientTemperature, 0, 0})
}

// HotPocket places a sphere of warm smoke near the floor on top of the
// ambient temperature.
type HotPocket struct {
	Center      mgl32.Vec3 // normalized grid coordinates
	Radius      float32    // fraction of the smallest axis
	Temperature float32
	Density     float32
}

func NewHotPocket() *HotPocket {
	return &HotPocket{
		Center:      mgl32.Vec3{0.5, 0.2, 0.5},
		Radius:      0.2,
		Temperature: 5,
		Density:     1,
	}
}

func (h *HotPocket) Name() string { return "hot-pocket" }

func (h *HotPocket) Seed(g *grid.Grid, p kernel.Params) {
	Ambient{}.Seed(g, p)
	eachInSphere(g, h.Center, h.Radius, func(i int) {
		g.VelocityDensity.Cells()[i][grid.Density] = h.Density
		g.PressureTempPhiReaction.Cells()[i][grid.Temperature] = p.AmbientTemperature + h.Temperature
	})
}

// FuelPool places a flat pocket of reacting fuel centred under the input
// position.
type FuelPool struct {
	Radius   float32
	Reaction float32
}

func NewFuelPool() *FuelPool {
	return &FuelPool{Radius: 0.15, Reaction: 1}
}

func (f *FuelPool) Name() string { return "fuel-pool" }

func (f *FuelPool) Seed(g *grid.Grid, p kernel.Params) {
	Ambient{}.Seed(g, p)
	eachInSphere(g, p.InputPos, f.Radius, func(i int) {
		g.PressureTempPhiReaction.Cells()[i][grid.Reaction] = f.Reaction
	})
}

// eachInSphere calls fn with the index of every voxel whose centre lies
// within radius of center, both in normalized coordinates.
func eachInSphere(g *grid.Grid, center mgl32.Vec3, radius float32, fn func(i int)) {
	ext := g.Extent()
	size := ext.Size()
	scale := min(size[0], size[1], size[2])
	c := mgl32.Vec3{center[0] * size[0], center[1] * size[1], center[2] * size[2]}
	r := radius * scale

	for i := 0; i < ext.Len(); i++ {
		x, y, z := ext.Coords(i)
		if (mgl32.Vec3{float32(x), float32(y), float32(z)}).Sub(c).Len() <= r {
			fn(i)
		}
	}
}
