package compute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny dispatches from paying goroutine overhead.
const minChunk = 256

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

// NewCPUBackendWorkers fixes the worker count; values below one mean one.
func NewCPUBackendWorkers(workers int) *CPUBackend {
	if workers < 1 {
		workers = 1
	}
	return &CPUBackend{workers: workers}
}

func (c *CPUBackend) Name() string { return "cpu" }
func (c *CPUBackend) Workers() int { return c.workers }

func (c *CPUBackend) Dispatch(ctx context.Context, n int, fn func(start, end int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}

	workers := c.workers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return nil
	}

	// Several chunks per worker so one slow chunk does not stall the batch.
	chunks := workers * 4
	chunkSize := (n + chunks - 1) / chunks

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		s := start
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(s, end)
			return nil
		})
	}

	return g.Wait()
}
