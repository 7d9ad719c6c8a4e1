package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
)

type hotScene struct{ temperature float32 }

func (h hotScene) Name() string { return "hot" }
func (h hotScene) Seed(g *grid.Grid, p kernel.Params) {
	g.PressureTempPhiReaction.Fill(mgl32.Vec4{0, h.temperature, 0, 0})
}

type nanScene struct{}

func (nanScene) Name() string { return "nan" }
func (nanScene) Seed(g *grid.Grid, p kernel.Params) {
	g.VelocityDensity.Set(2, 2, 2, mgl32.Vec4{0, 0, 0, float32(math.NaN())})
}

type testMetric struct {
	count int
	last  float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(g *grid.Grid, time float64) {
	t.count++
	t.last = time
}
func (t *testMetric) Value() float64 { return t.last }
func (t *testMetric) Reset()         { t.count, t.last = 0, 0 }

type frameRecorder struct{ frames []int }

func (f *frameRecorder) OnFrame(g *grid.Grid, frame int, t float64) {
	f.frames = append(f.frames, frame)
}

func testConfig(frames int) Config {
	return Config{
		Extent: grid.Extent{X: 6, Y: 6, Z: 6},
		Frames: frames,
		Params: kernel.DefaultParams(),
	}
}

func TestSimulatorRun(t *testing.T) {
	s := New(compute.NewSerialBackend(), hotScene{temperature: 2})
	metric := &testMetric{}
	rec := &frameRecorder{}
	s.AddMetric(metric)
	s.AddObserver(rec)

	result, err := s.Run(context.Background(), testConfig(10))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 10 || len(result.Times) != 10 {
		t.Errorf("expected 10 frames, got %d frames and %d times", result.Frames, len(result.Times))
	}
	if math.Abs(result.Times[9]-1.0) > 1e-6 {
		t.Errorf("expected final time 1.0, got %f", result.Times[9])
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if len(result.Series["test"]) != 10 {
		t.Errorf("expected 10 series samples, got %d", len(result.Series["test"]))
	}
	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if len(rec.frames) != 10 || rec.frames[0] != 0 || rec.frames[9] != 9 {
		t.Errorf("unexpected observer frames %v", rec.frames)
	}

}

func TestSimulatorSeedsScene(t *testing.T) {
	s := New(compute.NewSerialBackend(), hotScene{temperature: 2})
	result, err := s.Run(context.Background(), testConfig(1))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// one frame of buoyancy: dt * (T·dissipation - ambient) * buoyancy
	if got := result.Final.VelocityDensity.At(3, 3, 3)[grid.VelY]; math.Abs(float64(got)-0.199) > 1e-5 {
		t.Errorf("expected vy 0.199, got %f", got)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(compute.NewSerialBackend(), nil)

	badParams := kernel.DefaultParams()
	badParams.Dt = 0

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero frames", Config{Extent: grid.Extent{X: 2, Y: 2, Z: 2}, Params: kernel.DefaultParams()}, ErrInvalidConfig},
		{"empty extent", Config{Frames: 1, Params: kernel.DefaultParams()}, grid.ErrInvalidExtent},
		{"zero dt", Config{Extent: grid.Extent{X: 2, Y: 2, Z: 2}, Frames: 1, Params: badParams}, kernel.ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(compute.NewCPUBackendWorkers(2), nil)
	result, err := s.Run(ctx, testConfig(5))

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) || simErr.Frame != 0 {
		t.Errorf("expected cancellation at frame 0, got %v", err)
	}
	if result == nil || result.Frames != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

func TestSimulatorValidateState(t *testing.T) {
	cfg := testConfig(3)

	s := New(compute.NewSerialBackend(), nanScene{})
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NaN must propagate silently without validation, got %v", err)
	}
	if result.Final.IsFinite() {
		t.Error("expected NaN to survive in the final grid")
	}

	cfg.ValidateState = true
	_, err = s.Run(context.Background(), cfg)
	if !errors.Is(err, ErrUnstable) {
		t.Errorf("expected ErrUnstable, got %v", err)
	}
}

func TestEnsembleRun(t *testing.T) {
	factory := func() *Simulator {
		s := New(compute.NewSerialBackend(), hotScene{temperature: 1})
		s.AddMetric(&testMetric{})
		return s
	}

	cfgs := []Config{testConfig(2), testConfig(4), testConfig(3)}
	cfgs[2].Extent = grid.Extent{X: 4, Y: 5, Z: 6}

	results, err := NewEnsemble(factory, 2).Run(context.Background(), cfgs)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	for i, r := range results {
		if r.Frames != cfgs[i].Frames {
			t.Errorf("member %d: expected %d frames, got %d", i, cfgs[i].Frames, r.Frames)
		}
		if r.Final.Extent() != cfgs[i].Extent {
			t.Errorf("member %d: extent %s, want %s", i, r.Final.Extent(), cfgs[i].Extent)
		}
	}
}

func TestEnsemblePropagatesError(t *testing.T) {
	factory := func() *Simulator { return New(compute.NewSerialBackend(), nil) }
	cfgs := []Config{testConfig(2), {Extent: grid.Extent{X: 2, Y: 2, Z: 2}}}

	if _, err := NewEnsemble(factory, 0).Run(context.Background(), cfgs); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func sameGrid(a, b *grid.Grid) bool {
	pairs := [][2]*grid.Buffer{
		{a.VelocityDensity, b.VelocityDensity},
		{a.PressureTempPhiReaction, b.PressureTempPhiReaction},
		{a.CurlObstacles, b.CurlObstacles},
	}
	for _, p := range pairs {
		ca, cb := p[0].Cells(), p[1].Cells()
		if len(ca) != len(cb) {
			return false
		}
		for i := range ca {
			if ca[i] != cb[i] {
				return false
			}
		}
	}
	return true
}

func TestSimulatorWithPool(t *testing.T) {
	cfg := testConfig(3)
	want, err := New(compute.NewSerialBackend(), hotScene{temperature: 2}).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unpooled run failed: %v", err)
	}

	pool, err := grid.NewPool(cfg.Extent)
	if err != nil {
		t.Fatal(err)
	}
	s := New(compute.NewSerialBackend(), hotScene{temperature: 2}, WithPool(pool))

	// the second run reuses grids the first one returned
	for run := 0; run < 2; run++ {
		got, err := s.Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("pooled run %d failed: %v", run, err)
		}
		if !sameGrid(got.Final, want.Final) {
			t.Errorf("pooled run %d differs from unpooled run", run)
		}
	}

	other, _ := grid.NewPool(grid.Extent{X: 3, Y: 3, Z: 3})
	s = New(compute.NewSerialBackend(), hotScene{temperature: 2}, WithPool(other))
	got, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run with mismatched pool failed: %v", err)
	}
	if got.Final.Extent() != cfg.Extent || !sameGrid(got.Final, want.Final) {
		t.Error("mismatched pool should fall back to fresh grids")
	}
}

func TestEnsembleMembersMatchStandalone(t *testing.T) {
	factory := func() *Simulator { return New(compute.NewSerialBackend(), hotScene{temperature: 2}) }
	cfgs := []Config{testConfig(3), testConfig(3), testConfig(3)}

	want, err := factory().Run(context.Background(), cfgs[0])
	if err != nil {
		t.Fatalf("standalone run failed: %v", err)
	}

	// one member at a time so each draws grids the previous one returned
	results, err := NewEnsemble(factory, 1).Run(context.Background(), cfgs)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	for i, r := range results {
		if !sameGrid(r.Final, want.Final) {
			t.Errorf("member %d differs from a standalone run", i)
		}
	}
}
