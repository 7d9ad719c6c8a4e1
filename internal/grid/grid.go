package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidExtent indicates a grid axis smaller than one voxel.
	ErrInvalidExtent = errors.New("grid: extent must be at least 1 on every axis")

	// ErrExtentMismatch indicates two grids or buffers of different size.
	ErrExtentMismatch = errors.New("grid: extent mismatch")
)

// Channel indices inside a cell.
const (
	// VelocityDensity
	VelX    = 0
	VelY    = 1
	VelZ    = 2
	Density = 3

	// PressureTempPhiReaction
	Pressure    = 0
	Temperature = 1
	Phi         = 2
	Reaction    = 3

	// CurlObstacles. Divergence shares channel 0 with CurlX once the
	// pressure stage has run.
	CurlX      = 0
	CurlY      = 1
	CurlZ      = 2
	Divergence = 0
	Obstacle   = 3
)

// Extent is the size of the voxel index space.
type Extent struct {
	X, Y, Z int
}

func NewExtent(x, y, z int) (Extent, error) {
	e := Extent{X: x, Y: y, Z: z}
	if err := e.Validate(); err != nil {
		return Extent{}, err
	}
	return e, nil
}

func (e Extent) Validate() error {
	if e.X < 1 || e.Y < 1 || e.Z < 1 {
		return fmt.Errorf("%w: got %dx%dx%d", ErrInvalidExtent, e.X, e.Y, e.Z)
	}
	return nil
}

func (e Extent) Len() int { return e.X * e.Y * e.Z }

// Index maps voxel coordinates to the flat buffer index.
func (e Extent) Index(x, y, z int) int {
	return x + e.X*(y+e.Y*z)
}

// Coords is the inverse of Index.
func (e Extent) Coords(i int) (x, y, z int) {
	x = i % e.X
	i /= e.X
	y = i % e.Y
	z = i / e.Y
	return
}

func (e Extent) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < e.X && y < e.Y && z < e.Z
}

// Size returns the extent as a float vector, the form the kernel divides by.
func (e Extent) Size() mgl32.Vec3 {
	return mgl32.Vec3{float32(e.X), float32(e.Y), float32(e.Z)}
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%dx%d", e.X, e.Y, e.Z)
}

// Buffer is one flat 3-D array of four-channel cells.
type Buffer struct {
	ext   Extent
	cells []mgl32.Vec4
}

func NewBuffer(ext Extent) (*Buffer, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return &Buffer{ext: ext, cells: make([]mgl32.Vec4, ext.Len())}, nil
}

func (b *Buffer) Extent() Extent { return b.ext }

// Cells exposes the backing slice in index order.
func (b *Buffer) Cells() []mgl32.Vec4 { return b.cells }

func (b *Buffer) At(x, y, z int) mgl32.Vec4 {
	return b.cells[b.ext.Index(x, y, z)]
}

func (b *Buffer) Set(x, y, z int, v mgl32.Vec4) {
	b.cells[b.ext.Index(x, y, z)] = v
}

func (b *Buffer) Fill(v mgl32.Vec4) {
	for i := range b.cells {
		b.cells[i] = v
	}
}

// Channel copies one channel of every cell into a float64 slice.
func (b *Buffer) Channel(c int) []float64 {
	out := make([]float64, len(b.cells))
	for i, v := range b.cells {
		out[i] = float64(v[c])
	}
	return out
}

func (b *Buffer) CopyFrom(src *Buffer) error {
	if b.ext != src.ext {
		return fmt.Errorf("%w: %s vs %s", ErrExtentMismatch, b.ext, src.ext)
	}
	copy(b.cells, src.cells)
	return nil
}

// Grid is the simulation state: three co-indexed buffers.
type Grid struct {
	ext                     Extent
	VelocityDensity         *Buffer
	PressureTempPhiReaction *Buffer
	CurlObstacles           *Buffer
}

// New allocates a zeroed grid.
func New(ext Extent) (*Grid, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{ext: ext}
	g.VelocityDensity, _ = NewBuffer(ext)
	g.PressureTempPhiReaction, _ = NewBuffer(ext)
	g.CurlObstacles, _ = NewBuffer(ext)
	return g, nil
}

func (g *Grid) Extent() Extent { return g.ext }

func (g *Grid) Clone() *Grid {
	c, _ := New(g.ext)
	_ = c.CopyFrom(g)
	return c
}

func (g *Grid) CopyFrom(src *Grid) error {
	if g.ext != src.ext {
		return fmt.Errorf("%w: %s vs %s", ErrExtentMismatch, g.ext, src.ext)
	}
	copy(g.VelocityDensity.cells, src.VelocityDensity.cells)
	copy(g.PressureTempPhiReaction.cells, src.PressureTempPhiReaction.cells)
	copy(g.CurlObstacles.cells, src.CurlObstacles.cells)
	return nil
}

func (g *Grid) Reset() {
	g.VelocityDensity.Fill(mgl32.Vec4{})
	g.PressureTempPhiReaction.Fill(mgl32.Vec4{})
	g.CurlObstacles.Fill(mgl32.Vec4{})
}

// IsSolid reports whether the obstacle flag of a voxel is set.
func (g *Grid) IsSolid(x, y, z int) bool {
	return g.CurlObstacles.At(x, y, z)[Obstacle] > SolidThreshold
}

// SolidThreshold is the flag value above which a voxel counts as solid.
const SolidThreshold = 0.1

// IsFinite reports whether every channel of every buffer is a finite number.
func (g *Grid) IsFinite() bool {
	for _, b := range []*Buffer{g.VelocityDensity, g.PressureTempPhiReaction, g.CurlObstacles} {
		for _, v := range b.cells {
			for _, f := range v {
				if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
					return false
				}
			}
		}
	}
	return true
}
