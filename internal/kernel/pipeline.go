package kernel

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/firesim/internal/compute"
	"github.com/san-kum/firesim/internal/grid"
)

// ErrAliasedGrids indicates Update was handed the same grid to read and write.
var ErrAliasedGrids = errors.New("kernel: source and destination grids must differ")

// ObstacleWindow is the elapsed time up to which the obstacle classifier runs.
const ObstacleWindow = 1.0

type pipeline struct {
	src, dst *grid.Grid
	ext      grid.Extent
	size     mgl32.Vec3
	params   Params
	elapsed  float32
}

// Update advances src by one timestep into dst. Every read targets src and
// every voxel writes only its own three cells in dst, so the result does
// not depend on how the backend schedules voxels.
func Update(ctx context.Context, backend compute.Backend, params Params, elapsed float32, src, dst *grid.Grid) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if src == dst {
		return ErrAliasedGrids
	}
	if src.Extent() != dst.Extent() {
		return fmt.Errorf("%w: %s vs %s", grid.ErrExtentMismatch, src.Extent(), dst.Extent())
	}

	k := &pipeline{
		src:     src,
		dst:     dst,
		ext:     src.Extent(),
		size:    src.Extent().Size(),
		params:  params,
		elapsed: elapsed,
	}

	return backend.Dispatch(ctx, k.ext.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			k.step(i)
		}
	})
}

// step runs the full per-voxel pipeline. The order is fixed: each stage
// consumes the local values left by the one before it.
func (k *pipeline) step(i int) {
	v := newVoxel(k.src, i)

	vd := k.src.VelocityDensity.Cells()[i]
	pt := k.src.PressureTempPhiReaction.Cells()[i]
	co := k.src.CurlObstacles.Cells()[i]

	if k.elapsed <= ObstacleWindow {
		classifyObstacles(k.ext, &v, &co)
	}

	k.advectVelocityDensity(&v, co, &vd)
	k.advectTemperatureReaction(&v, co, vd, &pt)
	k.applyBuoyancy(&vd, pt)
	k.applyImpulse(&v, k.params.ReactionAmount, grid.Reaction, &pt)
	k.applyImpulse(&v, k.params.TemperatureAmount, grid.Temperature, &pt)
	k.applyExtinguishment(pt, &vd)
	k.applyVorticityConfinement(&v, &co, &vd)
	k.computeDivergence(&v, &co)
	k.solvePressure(&v, co, &pt)
	k.project(&v, co, pt, &vd)

	k.dst.VelocityDensity.Cells()[i] = vd
	k.dst.PressureTempPhiReaction.Cells()[i] = pt
	k.dst.CurlObstacles.Cells()[i] = co
}
