// Package metrics provides per-frame diagnostics over a fire grid.
//
// Every metric keeps the value computed from the most recent frame, except
// Stability which accumulates over the run.
package metrics

import "github.com/san-kum/firesim/internal/grid"

type Metric interface {
	Name() string
	Observe(g *grid.Grid, t float64)
	Value() float64
	Reset()
}

// gauge holds the latest observed value of a metric.
type gauge struct {
	name  string
	value float64
}

func (g *gauge) Name() string   { return g.name }
func (g *gauge) Value() float64 { return g.value }
func (g *gauge) Reset()         { g.value = 0 }

// Default returns a fresh instance of every grid metric, in display order.
func Default() []Metric {
	return []Metric{
		NewTotalDensity(),
		NewKineticEnergy(),
		NewPeakTemperature(),
		NewReactionMass(),
		NewMaxDivergence(),
		NewStability(),
	}
}

// Names lists the metric names produced by Default.
func Names() []string {
	ms := Default()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}
