package sim

import (
	"time"

	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
)

// Scene seeds the initial grid state of a run.
type Scene interface {
	Name() string
	Seed(g *grid.Grid, p kernel.Params)
}

type Metric interface {
	Name() string
	Observe(g *grid.Grid, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every committed frame. The grid is only valid
// for the duration of the call.
type Observer interface {
	OnFrame(g *grid.Grid, frame int, t float64)
}

type Config struct {
	Extent grid.Extent
	Frames int
	Params kernel.Params

	// ValidateState stops the run with ErrUnstable as soon as a frame holds
	// NaN or Inf. Off by default: the kernel lets non-finite values propagate.
	ValidateState bool
}

type Result struct {
	Frames   int
	Times    []float64
	Series   map[string][]float64
	Metrics  map[string]float64
	Final    *grid.Grid
	Duration time.Duration
}
