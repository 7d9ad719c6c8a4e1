package grid

import "sync"

// Pool recycles grids of a single extent.
type Pool struct {
	pool sync.Pool
	ext  Extent
}

func NewPool(ext Extent) (*Pool, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return &Pool{
		ext: ext,
		pool: sync.Pool{
			New: func() interface{} {
				g, _ := New(ext)
				return g
			},
		},
	}, nil
}

func (p *Pool) Extent() Extent { return p.ext }

// Get returns a zeroed grid.
func (p *Pool) Get() *Grid {
	return p.pool.Get().(*Grid)
}

// Put zeroes g and returns it to the pool. Grids of another extent are dropped.
func (p *Pool) Put(g *Grid) {
	if g == nil || g.ext != p.ext {
		return
	}
	g.Reset()
	p.pool.Put(g)
}
