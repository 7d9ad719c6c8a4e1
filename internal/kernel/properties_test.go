package kernel_test

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
)

// quietParams disables every source so only transport acts on the state.
func quietParams() kernel.Params {
	p := kernel.DefaultParams()
	p.DensityAmount = 0
	p.TemperatureAmount = 0
	p.ReactionAmount = 0
	p.ReactionDecay = 0
	p.ReactionExtinguishment = 0
	p.DensityBuoyancy = 0
	p.DensityWeight = 0
	p.VorticityStrength = 0
	p.AmbientTemperature = 0
	return p
}

func cube(n int) grid.Extent { return grid.Extent{X: n, Y: n, Z: n} }

func onShell(ext grid.Extent, x, y, z int) bool {
	return x == 0 || y == 0 || z == 0 || x == ext.X-1 || y == ext.Y-1 || z == ext.Z-1
}

var _ = Describe("Fire kernel", func() {
	var (
		ctx     context.Context
		session *kernel.Session
	)

	newSession := func(n int) *kernel.Session {
		s, err := kernel.NewSession(cube(n), compute.NewSerialBackend())
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		ctx = context.Background()
	})

	AfterEach(func() {
		if session != nil {
			_ = session.Close()
			session = nil
		}
	})

	Describe("obstacles", func() {
		It("keeps boundary velocity at exactly zero while forcing runs", func() {
			session = newSession(8)
			p := kernel.DefaultParams()
			p.InputPos = mgl32.Vec3{0.5, 0.5, 0.5}
			p.InputRadius = 0.3

			for frame := 0; frame < 20; frame++ {
				Expect(session.Step(ctx, p, float32(frame)*p.Dt)).To(Succeed())

				g := session.Current()
				ext := g.Extent()
				for i, c := range g.VelocityDensity.Cells() {
					x, y, z := ext.Coords(i)
					if onShell(ext, x, y, z) {
						Expect(c.Vec3()).To(Equal(mgl32.Vec3{}), "frame %d voxel (%d,%d,%d)", frame, x, y, z)
					}
				}
			}
		})

		It("classifies the same shell when applied twice", func() {
			g, err := grid.New(cube(5))
			Expect(err).NotTo(HaveOccurred())

			kernel.ClassifyObstacles(g)
			once := g.Clone()
			kernel.ClassifyObstacles(g)

			Expect(g.CurlObstacles.Cells()).To(Equal(once.CurlObstacles.Cells()))
		})

		It("keeps flags stable across steps inside the classification window", func() {
			session = newSession(5)
			p := quietParams()

			Expect(session.Step(ctx, p, 0)).To(Succeed())
			first := session.Current().CurlObstacles.Channel(grid.Obstacle)
			Expect(session.Step(ctx, p, p.Dt)).To(Succeed())

			Expect(session.Current().CurlObstacles.Channel(grid.Obstacle)).To(Equal(first))
		})
	})

	Describe("rest state", func() {
		It("stays at zero with no forcing", func() {
			session = newSession(6)
			p := quietParams()

			for frame := 0; frame < 12; frame++ {
				Expect(session.Step(ctx, p, float32(frame)*p.Dt)).To(Succeed())
			}

			g := session.Current()
			for _, c := range g.VelocityDensity.Cells() {
				Expect(c).To(Equal(mgl32.Vec4{}))
			}
			for _, c := range g.PressureTempPhiReaction.Cells() {
				Expect(c).To(Equal(mgl32.Vec4{}))
			}
			for _, c := range g.CurlObstacles.Cells() {
				Expect(c.Vec3()).To(Equal(mgl32.Vec3{}))
			}
		})
	})

	Describe("reaction impulse", func() {
		It("raises reaction only in the voxel at the input position", func() {
			session = newSession(3)
			p := quietParams()
			p.Dt = 1
			p.ReactionAmount = 1
			p.InputRadius = 0.01
			p.InputPos = mgl32.Vec3{float32(1) / 3, float32(1) / 3, float32(1) / 3}

			Expect(session.Step(ctx, p, 0)).To(Succeed())

			g := session.Current()
			ext := g.Extent()
			for i, c := range g.PressureTempPhiReaction.Cells() {
				x, y, z := ext.Coords(i)
				if x == 1 && y == 1 && z == 1 {
					Expect(c[grid.Reaction]).To(Equal(float32(1)))
					continue
				}
				Expect(c[grid.Reaction]).To(BeZero(), "voxel (%d,%d,%d)", x, y, z)
			}
		})
	})

	Describe("buoyancy", func() {
		It("accelerates every fluid voxel upward when hotter than ambient", func() {
			session = newSession(6)
			p := quietParams()
			p.Dt = 0.5
			p.DensityBuoyancy = 1
			p.TemperatureDissipation = 1
			session.Current().PressureTempPhiReaction.Fill(mgl32.Vec4{0, 1, 0, 0})

			Expect(session.Step(ctx, p, 0)).To(Succeed())

			g := session.Current()
			ext := g.Extent()
			fluid := 0
			for i, c := range g.VelocityDensity.Cells() {
				x, y, z := ext.Coords(i)
				if g.IsSolid(x, y, z) {
					continue
				}
				fluid++
				Expect(c[grid.VelY]).To(BeNumerically(">", 0), "voxel (%d,%d,%d)", x, y, z)
			}
			Expect(fluid).To(Equal(64))
		})
	})

	Describe("advection", func() {
		It("reproduces the trilinear backtrace exactly with unit dissipation", func() {
			ext := cube(8)
			src, err := grid.New(ext)
			Expect(err).NotTo(HaveOccurred())
			dst, err := grid.New(ext)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < ext.Len(); i++ {
				x, y, z := ext.Coords(i)
				src.VelocityDensity.Cells()[i] = mgl32.Vec4{
					0.6 * float32(math.Sin(float64(y)*0.7)),
					0.4 * float32(math.Cos(float64(x)*0.5)),
					0.3,
					float32(x+2*y+3*z) * 0.01,
				}
			}

			p := quietParams()
			p.VelocityDissipation = 1
			p.DensityDissipation = 1
			p.TemperatureDissipation = 1

			Expect(kernel.Update(ctx, compute.NewSerialBackend(), p, 0, src, dst)).To(Succeed())

			for i := 0; i < ext.Len(); i++ {
				x, y, z := ext.Coords(i)
				if onShell(ext, x, y, z) {
					continue
				}
				vel := src.VelocityDensity.Cells()[i]
				from := mgl32.Vec3{
					float32(x) - float32(p.Dt*vel[0]),
					float32(y) - float32(p.Dt*vel[1]),
					float32(z) - float32(p.Dt*vel[2]),
				}
				want := grid.TrilinearCell(src.VelocityDensity, from)
				Expect(dst.VelocityDensity.Cells()[i]).To(Equal(want), "voxel (%d,%d,%d)", x, y, z)
			}
		})
	})

	Describe("backends", func() {
		DescribeTable("produce identical grids",
			func(workers int) {
				ext := cube(12)
				seed := func() *grid.Grid {
					g, _ := grid.New(ext)
					for i := 0; i < ext.Len(); i++ {
						x, y, z := ext.Coords(i)
						g.VelocityDensity.Cells()[i] = mgl32.Vec4{float32(y) * 0.05, float32(z) * -0.03, float32(x) * 0.02, 0.5}
						g.PressureTempPhiReaction.Cells()[i] = mgl32.Vec4{0, float32(y) * 0.1, 0, 0.01}
					}
					return g
				}

				serialSrc, parallelSrc := seed(), seed()
				serialDst, _ := grid.New(ext)
				parallelDst, _ := grid.New(ext)
				p := kernel.DefaultParams()

				for frame := 0; frame < 4; frame++ {
					elapsed := float32(frame) * p.Dt
					Expect(kernel.Update(ctx, compute.NewSerialBackend(), p, elapsed, serialSrc, serialDst)).To(Succeed())
					Expect(kernel.Update(ctx, compute.NewCPUBackendWorkers(workers), p, elapsed, parallelSrc, parallelDst)).To(Succeed())
					serialSrc, serialDst = serialDst, serialSrc
					parallelSrc, parallelDst = parallelDst, parallelSrc
				}

				Expect(parallelSrc.VelocityDensity.Cells()).To(Equal(serialSrc.VelocityDensity.Cells()))
				Expect(parallelSrc.PressureTempPhiReaction.Cells()).To(Equal(serialSrc.PressureTempPhiReaction.Cells()))
				Expect(parallelSrc.CurlObstacles.Cells()).To(Equal(serialSrc.CurlObstacles.Cells()))
			},
			Entry("two workers", 2),
			Entry("four workers", 4),
			Entry("sixteen workers", 16),
		)
	})
})
