package physics

import (
	"math"

	"minivox/internal/profiling"
	"minivox/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// ceilingEpsilon keeps the head fractionally below a ceiling after an
// upward hit; without it the snapped position still overlaps the block
// above and the body wedges there.
const ceilingEpsilon = 0.001

// Resolver sweeps an axis-aligned body through the voxel field one axis
// at a time. Positions are eye positions: the body box spans the
// horizontal square of half-extent Radius around the eye and the vertical
// range [eye-Height, eye].
type Resolver struct {
	source BlockSource
	reg    *registry.Registry

	Radius float32
	Height float32
}

// NewResolver creates a resolver for a body of the given half-extent and
// height.
func NewResolver(source BlockSource, reg *registry.Registry, radius, height float32) *Resolver {
	return &Resolver{
		source: source,
		reg:    reg,
		Radius: radius,
		Height: height,
	}
}

// Collides reports whether the body box at eye position pos overlaps any
// solid block. Blocks occupy the half-open unit cube [b, b+1) per axis,
// so a body resting exactly on a block's top face does not collide.
func (r *Resolver) Collides(pos mgl32.Vec3) bool {
	minX := pos.X() - r.Radius
	maxX := pos.X() + r.Radius
	minY := pos.Y() - r.Height
	maxY := pos.Y()
	minZ := pos.Z() - r.Radius
	maxZ := pos.Z() + r.Radius

	for bx := floorf(minX); bx <= floorf(maxX); bx++ {
		for by := floorf(minY); by <= floorf(maxY); by++ {
			for bz := floorf(minZ); bz <= floorf(maxZ); bz++ {
				if !r.reg.IsSolid(r.source.GetBlock(bx, by, bz)) {
					continue
				}
				if minX < float32(bx+1) && maxX > float32(bx) &&
					minY < float32(by+1) && maxY > float32(by) &&
					minZ < float32(bz+1) && maxZ > float32(bz) {
					return true
				}
			}
		}
	}
	return false
}

// OverlapsBlock reports whether the body box at eye position pos overlaps
// the unit cube of the given block. Placement uses it to refuse blocks
// inside the player.
func (r *Resolver) OverlapsBlock(pos mgl32.Vec3, bx, by, bz int) bool {
	return pos.X()-r.Radius < float32(bx+1) && pos.X()+r.Radius > float32(bx) &&
		pos.Y()-r.Height < float32(by+1) && pos.Y() > float32(by) &&
		pos.Z()-r.Radius < float32(bz+1) && pos.Z()+r.Radius > float32(bz)
}

// Resolve applies one step's velocity to an eye position, sliding along
// blocked axes. The sweep order is X, then Z, then Y; a vertical hit
// snaps the body flush against the surface so the next step starts in
// contact instead of embedded. Returns the new position, the velocity
// with blocked components zeroed, and whether the body ended on ground.
func (r *Resolver) Resolve(pos, vel mgl32.Vec3, dt float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	defer profiling.Track("physics.Resolve")()

	next := pos
	grounded := false

	next[0] += vel.X() * dt
	if r.Collides(next) {
		next[0] = pos.X()
		vel[0] = 0
	}

	next[2] += vel.Z() * dt
	if r.Collides(next) {
		next[2] = pos.Z()
		vel[2] = 0
	}

	dy := vel.Y() * dt
	next[1] += dy
	if r.Collides(next) {
		switch {
		case dy < 0:
			// Feet landed: snap onto the top face of the block they
			// entered.
			feet := next.Y() - r.Height
			next[1] = float32(floorf(feet)+1) + r.Height
			grounded = true
		case dy > 0:
			// Head bumped: snap just below the bottom face.
			next[1] = float32(floorf(next.Y())) - ceilingEpsilon
		default:
			next[1] = pos.Y()
		}
		vel[1] = 0
	}

	return next, vel, grounded
}

func floorf(v float32) int {
	return int(math.Floor(float64(v)))
}
