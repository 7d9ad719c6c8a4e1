package grid

import "github.com/go-gl/mathgl/mgl32"

// Floor loads the cell containing p. Coordinates are truncated toward zero,
// so -0.5 maps to cell 0. Cells outside the extent read as zero.
func Floor(b *Buffer, p mgl32.Vec3) mgl32.Vec4 {
	return b.load(int(p[0]), int(p[1]), int(p[2]))
}

func (b *Buffer) load(x, y, z int) mgl32.Vec4 {
	if !b.ext.Contains(x, y, z) {
		return mgl32.Vec4{}
	}
	return b.cells[b.ext.Index(x, y, z)]
}

// TrilinearCell interpolates all four channels between the eight cells
// around p. Only the upper neighbour is clamped to extent-1; the lower
// corner is whatever truncation yields.
func TrilinearCell(b *Buffer, p mgl32.Vec3) mgl32.Vec4 {
	x, y, z := int(p[0]), int(p[1]), int(p[2])

	fx := p[0] - float32(x)
	fy := p[1] - float32(y)
	fz := p[2] - float32(z)

	xp1 := min(b.ext.X-1, x+1)
	yp1 := min(b.ext.Y-1, y+1)
	zp1 := min(b.ext.Z-1, z+1)

	x0 := lerp(b.load(x, y, z), b.load(xp1, y, z), fx)
	x1 := lerp(b.load(x, y, zp1), b.load(xp1, y, zp1), fx)
	x2 := lerp(b.load(x, yp1, z), b.load(xp1, yp1, z), fx)
	x3 := lerp(b.load(x, yp1, zp1), b.load(xp1, yp1, zp1), fx)

	z0 := lerp(x0, x1, fz)
	z1 := lerp(x2, x3, fz)

	return lerp(z0, z1, fy)
}

// Trilinear interpolates a single channel.
func Trilinear(b *Buffer, p mgl32.Vec3, channel int) float32 {
	return TrilinearCell(b, p)[channel]
}

// TrilinearVec3 interpolates the first three channels.
func TrilinearVec3(b *Buffer, p mgl32.Vec3) mgl32.Vec3 {
	return TrilinearCell(b, p).Vec3()
}

// lerp rounds each product before the sum so results do not depend on
// whether the compiler fuses multiply-add.
func lerp(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	var out mgl32.Vec4
	s := 1 - t
	for i := range out {
		out[i] = float32(a[i]*s) + float32(b[i]*t)
	}
	return out
}
