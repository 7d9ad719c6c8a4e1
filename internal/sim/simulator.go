package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/grid"
	"github.com/san-kum/firesim/internal/kernel"
)

type Simulator struct {
	backend   compute.Backend
	scene     Scene
	pool      *grid.Pool
	metrics   []Metric
	observers []Observer
	logger    *zap.Logger
}

type Option func(*Simulator)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithPool makes runs whose extent matches the pool borrow their grids
// from it.
func WithPool(p *grid.Pool) Option {
	return func(s *Simulator) { s.pool = p }
}

// New creates a simulator. A nil backend is selected automatically and a nil
// scene leaves the grid at rest.
func New(backend compute.Backend, scene Scene, opts ...Option) *Simulator {
	if backend == nil {
		backend = compute.AutoSelectBackend()
	}
	s := &Simulator{
		backend:   backend,
		scene:     scene,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Backend() compute.Backend { return s.backend }

// Run seeds a fresh session and steps it cfg.Frames times. Elapsed time
// starts at zero and advances by Dt per frame. On cancellation the frames
// completed so far are returned together with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	session, err := s.newSession(cfg.Extent)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if s.scene != nil {
		s.scene.Seed(session.Current(), cfg.Params)
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Frames),
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	log := s.logger.With(
		zap.Stringer("extent", cfg.Extent),
		zap.String("backend", s.backend.Name()),
	)
	log.Info("simulation started", zap.Int("frames", cfg.Frames))

	start := time.Now()
	milestone := max(1, cfg.Frames/10)
	dt := float64(cfg.Params.Dt)
	t := 0.0

	for frame := 0; frame < cfg.Frames; frame++ {
		if err := session.Step(ctx, cfg.Params, float32(t)); err != nil {
			s.finish(result, session, start)
			if ctx.Err() != nil {
				log.Warn("simulation canceled", zap.Int("frame", frame))
			}
			return result, &SimulationError{Frame: frame, Time: t, Wrapped: err}
		}
		t += dt

		g := session.Current()
		for _, m := range s.metrics {
			m.Observe(g, t)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, obs := range s.observers {
			obs.OnFrame(g, frame, t)
		}
		result.Times = append(result.Times, t)
		result.Frames++

		if cfg.ValidateState && !g.IsFinite() {
			s.finish(result, session, start)
			log.Warn("non-finite state", zap.Int("frame", frame), zap.Float64("time", t))
			return result, &SimulationError{Frame: frame, Time: t, Wrapped: ErrUnstable}
		}

		if (frame+1)%milestone == 0 {
			log.Debug("frame", zap.Int("frame", frame+1), zap.Float64("time", t))
		}
	}

	s.finish(result, session, start)
	log.Info("simulation finished",
		zap.Int("frames", result.Frames),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (s *Simulator) newSession(ext grid.Extent) (*kernel.Session, error) {
	if s.pool != nil && s.pool.Extent() == ext {
		return kernel.NewPooledSession(s.pool, s.backend), nil
	}
	return kernel.NewSession(ext, s.backend)
}

func (s *Simulator) finish(result *Result, session *kernel.Session, start time.Time) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = session.Current().Clone()
	result.Duration = time.Since(start)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if err := cfg.Extent.Validate(); err != nil {
		return err
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	return cfg.Params.Validate()
}
