package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/firesim/internal/grid"
)

// Factory builds an independent simulator for one ensemble member. Metrics
// and observers carry per-run state, so members must not share them.
type Factory func() *Simulator

// Ensemble runs several configurations concurrently. Members with the same
// extent draw their grids from a shared pool.
type Ensemble struct {
	factory Factory
	limit   int
}

// NewEnsemble creates an ensemble running at most limit members at once.
// A non-positive limit means no limit.
func NewEnsemble(factory Factory, limit int) *Ensemble {
	return &Ensemble{factory: factory, limit: limit}
}

// Run returns one result per config, in order. The first error cancels the
// remaining members.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	pools := make(map[grid.Extent]*grid.Pool)
	for _, cfg := range cfgs {
		if _, ok := pools[cfg.Extent]; ok {
			continue
		}
		if p, err := grid.NewPool(cfg.Extent); err == nil {
			pools[cfg.Extent] = p
		}
	}

	results := make([]*Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, cfg := range cfgs {
		g.Go(func() error {
			s := e.factory()
			if p, ok := pools[cfg.Extent]; ok {
				WithPool(p)(s)
			}
			res, err := s.Run(ctx, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
