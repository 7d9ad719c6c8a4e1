package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/metrics"
	"github.com/san-kum/firesim/internal/sim"
)

type Registry struct {
	scenes map[string]func() sim.Scene
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes: make(map[string]func() sim.Scene),
	}

	r.scenes["still"] = func() sim.Scene { return Still{} }
	r.scenes["ambient"] = func() sim.Scene { return Ambient{} }
	r.scenes["hot-pocket"] = func() sim.Scene { return NewHotPocket() }
	r.scenes["fuel-pool"] = func() sim.Scene { return NewFuelPool() }

	return r
}

func (r *Registry) GetScene(name string) (sim.Scene, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListScenes() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) GetBackend(name string) (compute.Backend, error) {
	return compute.Get(name)
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	ms := metrics.Default()
	out := make([]sim.Metric, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
