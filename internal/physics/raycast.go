package physics

import (
	"math"

	"minivox/internal/profiling"
	"minivox/internal/registry"
	"minivox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxReachDistance bounds block interaction rays, in world units.
const MaxReachDistance float32 = 6.0

// BlockSource is the voxel query surface physics needs from the store.
type BlockSource interface {
	GetBlock(wx, wy, wz int) world.BlockType
}

// RaycastResult stores the outcome of one ray walk. Before is the last
// empty cell the ray occupied in front of the hit block; it is absent
// when the ray starts inside a solid.
type RaycastResult struct {
	Hit       bool
	Block     [3]int
	Before    [3]int
	HasBefore bool
	Distance  float32
}

// Raycaster walks rays through the voxel grid cell by cell, visiting
// every cell the ray passes through in order. Rays stop on the same
// solidity the collision resolver uses, so leaves never block aim.
type Raycaster struct {
	source BlockSource
	reg    *registry.Registry
}

// NewRaycaster creates a raycaster reading blocks from source.
func NewRaycaster(source BlockSource, reg *registry.Registry) *Raycaster {
	return &Raycaster{source: source, reg: reg}
}

// Cast walks from origin along direction until it meets a solid block or
// travels maxDist. A zero-length direction reports no hit immediately.
func (rc *Raycaster) Cast(origin, direction mgl32.Vec3, maxDist float32) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	cur := [3]int{
		int(math.Floor(float64(origin.X()))),
		int(math.Floor(float64(origin.Y()))),
		int(math.Floor(float64(origin.Z()))),
	}

	// Per-axis traversal state. A zero direction component never steps
	// its axis: tMax stays +Inf.
	var step [3]int
	tMax := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	tDelta := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	for axis := 0; axis < 3; axis++ {
		d := float64(dir[axis])
		o := float64(origin[axis])
		switch {
		case d > 0:
			step[axis] = 1
			tDelta[axis] = 1 / d
			tMax[axis] = (math.Floor(o) + 1 - o) / d
		case d < 0:
			step[axis] = -1
			tDelta[axis] = -1 / d
			tMax[axis] = (math.Floor(o) - o) / d
		}
	}

	// A ray of length L crosses at most L+1 cell boundaries per axis, so
	// 3L+3 iterations bound the walk even when float noise stalls tMax.
	maxSteps := 3 * (int(maxDist) + 1)

	prev := [3]int{}
	hasPrev := false
	traveled := 0.0

	for i := 0; i <= maxSteps; i++ {
		bt := rc.source.GetBlock(cur[0], cur[1], cur[2])
		if rc.reg.IsSolid(bt) {
			return RaycastResult{
				Hit:       true,
				Block:     cur,
				Before:    prev,
				HasBefore: hasPrev,
				Distance:  float32(traveled),
			}
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		traveled = tMax[axis]
		if traveled > float64(maxDist) {
			return RaycastResult{}
		}

		prev = cur
		hasPrev = true
		cur[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}

	return RaycastResult{}
}
