// Package kernel implements the per-voxel fire timestep.
//
// Each voxel runs the same fixed pipeline against the previous grid state:
//
//  1. obstacle classification (only while elapsed ≤ 1)
//  2. semi-Lagrangian advection of velocity/density, then temperature/reaction
//  3. buoyancy, reaction and temperature impulses, extinguishment
//  4. vorticity confinement
//  5. divergence and an intra-voxel Jacobi pressure relaxation
//  6. projection
//
// and writes its three cells to the next grid. [Update] is the stateless
// entry point; [Session] owns a double-buffered pair of grids and swaps them
// after every step:
//
//	s, _ := kernel.NewSession(ext, compute.AutoSelectBackend())
//	defer s.Close()
//	for frame := 0; frame < n; frame++ {
//	    if err := s.Step(ctx, params, float32(frame)*params.Dt); err != nil {
//	        return err
//	    }
//	}
//
// Numerical blow-ups are not reported: NaN propagates through later steps
// until the grids are reset.
package kernel
