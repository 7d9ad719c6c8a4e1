package compute

import (
	"context"
	"fmt"
	"sort"
)

type Backend interface {
	Name() string
	Workers() int
	// Dispatch runs fn over disjoint chunks covering [0, n).
	Dispatch(ctx context.Context, n int, fn func(start, end int)) error
}

var backends = map[string]func() Backend{
	"cpu":    func() Backend { return NewCPUBackend() },
	"serial": func() Backend { return NewSerialBackend() },
	"auto":   AutoSelectBackend,
}

// AutoSelectBackend picks the CPU backend when more than one core is
// available and falls back to serial dispatch otherwise.
func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.Workers() > 1 {
		return cpu
	}
	return NewSerialBackend()
}

func Get(name string) (Backend, error) {
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, List())
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string { return "serial" }
func (s *SerialBackend) Workers() int { return 1 }

func (s *SerialBackend) Dispatch(ctx context.Context, n int, fn func(start, end int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n > 0 {
		fn(0, n)
	}
	return nil
}
