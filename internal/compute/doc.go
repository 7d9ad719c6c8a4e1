// Package compute provides the parallel-for used to dispatch voxel work.
//
// A [Backend] splits the index range [0, n) into chunks and runs a function
// over each chunk:
//
//   - CPU: chunks spread across runtime.NumCPU() goroutines (errgroup)
//   - Serial: a single inline loop, handy for debugging and tiny grids
//
// # Dispatch
//
//	backend := compute.AutoSelectBackend()
//	err := backend.Dispatch(ctx, ext.Len(), func(start, end int) {
//	    for i := start; i < end; i++ {
//	        // one voxel
//	    }
//	})
//
// Dispatch returns once every chunk has finished or ctx is cancelled. Units
// within one dispatch have no ordering guarantee; callers must not let one
// unit read what another writes in the same batch.
package compute
