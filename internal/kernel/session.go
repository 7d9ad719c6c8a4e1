package kernel

import (
	"context"

	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/grid"
)

// Session owns the simulation grids for one run. It keeps a current and a
// next grid, reads from the first, writes the second and swaps after each
// complete batch.
//
// A Session is not safe for concurrent use.
type Session struct {
	backend compute.Backend
	cur     *grid.Grid
	next    *grid.Grid
	pool    *grid.Pool
	frames  int
	closed  bool
}

// NewSession allocates both grids. A nil backend selects one automatically.
func NewSession(ext grid.Extent, backend compute.Backend) (*Session, error) {
	cur, err := grid.New(ext)
	if err != nil {
		return nil, err
	}
	next, _ := grid.New(ext)
	if backend == nil {
		backend = compute.AutoSelectBackend()
	}
	return &Session{backend: backend, cur: cur, next: next}, nil
}

// NewPooledSession takes both grids from pool and returns them on Close.
func NewPooledSession(pool *grid.Pool, backend compute.Backend) *Session {
	if backend == nil {
		backend = compute.AutoSelectBackend()
	}
	return &Session{backend: backend, cur: pool.Get(), next: pool.Get(), pool: pool}
}

// Step advances the simulation one timestep. If ctx is cancelled mid-batch
// the committed grid is left as it was.
func (s *Session) Step(ctx context.Context, params Params, elapsed float32) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := Update(ctx, s.backend, params, elapsed, s.cur, s.next); err != nil {
		return err
	}
	s.cur, s.next = s.next, s.cur
	s.frames++
	return nil
}

// Current returns the committed grid. Callers may seed it before the first
// step; it must not be written while Step runs.
func (s *Session) Current() *grid.Grid {
	return s.cur
}

func (s *Session) Extent() grid.Extent { return s.cur.Extent() }

func (s *Session) Frames() int { return s.frames }

func (s *Session) Backend() compute.Backend { return s.backend }

// Reset zeroes the grids and the frame count.
func (s *Session) Reset() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.cur.Reset()
	s.next.Reset()
	s.frames = 0
	return nil
}

// Close releases the grids. Further calls return ErrSessionClosed.
func (s *Session) Close() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	if s.pool != nil {
		s.pool.Put(s.cur)
		s.pool.Put(s.next)
	}
	s.cur, s.next = nil, nil
	return nil
}
