package metrics

import "github.com/san-kum/firesim/internal/grid"

// Stability is the fraction of observed frames whose grid held only finite
// values. NaN never recovers on its own, so a value below 1 means the run
// blew up at some frame.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(g *grid.Grid, t float64) {
	s.samples++
	if !g.IsFinite() {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
