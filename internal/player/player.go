package player

import (
	"math"

	"minivox/internal/physics"
	"minivox/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Tuning holds the movement parameters of a player body.
type Tuning struct {
	WalkSpeed    float32 // blocks per second
	JumpSpeed    float32 // initial upward velocity on jump
	Gravity      float32 // downward acceleration, blocks per second squared
	MaxFallSpeed float32 // fall speed clamp, keeps one step under a block height
}

// DefaultTuning returns the standard survival movement parameters.
func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:    4.3,
		JumpSpeed:    9.4,
		Gravity:      32.0,
		MaxFallSpeed: 50.0,
	}
}

// MoveIntent is one step worth of control input. Forward and Strafe are
// in [-1,1], turn deltas are in degrees.
type MoveIntent struct {
	Forward   float32
	Strafe    float32
	TurnYaw   float32
	TurnPitch float32
	Jump      bool
}

// Player is a first-person body driven by movement intents. Position is
// the eye point, not the feet.
type Player struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Yaw      float32 // degrees, 0 looks along +X
	Pitch    float32 // degrees, positive looks up
	OnGround bool

	// Dependencies
	resolver *physics.Resolver
	tuning   Tuning
}

func NewPlayer(resolver *physics.Resolver, tuning Tuning, spawn mgl32.Vec3) *Player {
	return &Player{
		Position: spawn,
		resolver: resolver,
		tuning:   tuning,
	}
}

// Update advances the body by one fixed step: turn, accelerate, jump,
// fall, then resolve against the world.
func (p *Player) Update(dt float32, intent MoveIntent) {
	defer profiling.Track("player.Update")()

	p.Yaw += intent.TurnYaw
	p.Pitch += intent.TurnPitch
	if p.Pitch > 89.0 {
		p.Pitch = 89.0
	}
	if p.Pitch < -89.0 {
		p.Pitch = -89.0
	}

	// Horizontal velocity follows the intent directly. The wish vector
	// is normalized so diagonals are no faster than a straight walk.
	f, s := intent.Forward, intent.Strafe
	if d := f*f + s*s; d > 1 {
		inv := float32(1 / math.Sqrt(float64(d)))
		f *= inv
		s *= inv
	}
	yawRad := float64(mgl32.DegToRad(p.Yaw))
	frontX := float32(math.Cos(yawRad))
	frontZ := float32(math.Sin(yawRad))
	strafeX := float32(math.Cos(yawRad + math.Pi/2))
	strafeZ := float32(math.Sin(yawRad + math.Pi/2))

	p.Velocity[0] = (f*frontX + s*strafeX) * p.tuning.WalkSpeed
	p.Velocity[2] = (f*frontZ + s*strafeZ) * p.tuning.WalkSpeed

	if intent.Jump && p.OnGround {
		p.Velocity[1] = p.tuning.JumpSpeed
		p.OnGround = false
	}

	p.Velocity[1] -= p.tuning.Gravity * dt
	if p.Velocity[1] < -p.tuning.MaxFallSpeed {
		p.Velocity[1] = -p.tuning.MaxFallSpeed
	}

	p.Position, p.Velocity, p.OnGround = p.resolver.Resolve(p.Position, p.Velocity, dt)
}

// ViewDir returns the unit view direction derived from yaw and pitch.
func (p *Player) ViewDir() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(p.Yaw))
	pt := float64(mgl32.DegToRad(p.Pitch))
	fx := float32(math.Cos(y) * math.Cos(pt))
	fy := float32(math.Sin(pt))
	fz := float32(math.Sin(y) * math.Cos(pt))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}
