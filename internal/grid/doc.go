// Package grid provides the dense voxel storage shared by the fire kernel.
//
// A [Grid] holds three index-aligned [Buffer] values over one [Extent]:
//
//   - VelocityDensity: (vx, vy, vz, density)
//   - PressureTempPhiReaction: (pressure, temperature, phi, reaction)
//   - CurlObstacles: (curl.x, curl.y, curl.z, obstacle flag)
//
// Cells are [mgl32.Vec4] values stored in flat slices; the
// (x, y, z) → linear index mapping is x + X*(y + Y*z). Extents are validated
// once when a buffer is allocated and never change afterwards.
//
// # Sampling
//
// [Floor] loads the cell containing a real coordinate (truncation toward
// zero) and [Trilinear] interpolates between the eight surrounding cells,
// clamping only the "+1" neighbour to the upper edge:
//
//	v := grid.TrilinearVec3(g.VelocityDensity, p)
//	t := grid.Trilinear(g.PressureTempPhiReaction, p, grid.Temperature)
package grid
