package game

import (
	"log/slog"

	"minivox/internal/config"
	"minivox/internal/meshing"
	"minivox/internal/physics"
	"minivox/internal/player"
	"minivox/internal/profiling"
	"minivox/internal/registry"
	"minivox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Input is one step of control state. Movement fields mirror
// player.MoveIntent; Break and Place act along the current view
// direction during the step they are set.
type Input struct {
	Forward   float32
	Strafe    float32
	TurnYaw   float32
	TurnPitch float32
	Jump      bool

	Break     bool
	Place     bool
	PlaceType world.BlockType
}

// Engine owns one simulation: the chunk world, the derived meshes and
// the player moving through it. All state hangs off this struct, so two
// engines never share anything.
type Engine struct {
	log *slog.Logger

	registry *registry.Registry
	store    *world.ChunkStore
	meshes   *meshing.MeshStore
	pipeline *meshPipeline
	streamer *world.ChunkStreamer
	resolver *physics.Resolver
	caster   *physics.Raycaster
	player   *player.Player

	steps uint64
}

// NewEngine wires every subsystem and streams the initial chunk
// footprint around the spawn column, so the returned engine is ready to
// step.
func NewEngine(cfg config.Config, log *slog.Logger) *Engine {
	reg := registry.New(log)
	store := world.NewChunkStore()
	gen := world.NewGenerator(cfg.Seed)
	meshes := meshing.NewMeshStore()
	pipeline := &meshPipeline{
		builder: meshing.NewBuilder(store, reg),
		store:   store,
		meshes:  meshes,
	}
	streamer := world.NewChunkStreamer(store, gen, pipeline, cfg.ViewRadius, log)
	resolver := physics.NewResolver(store, reg, cfg.Player.Radius, cfg.Player.Height)
	caster := physics.NewRaycaster(store, reg)

	surface := gen.HeightAt(0, 0)
	spawn := mgl32.Vec3{0.5, float32(surface) + cfg.Player.Height, 0.5}
	streamer.Update(spawn, true)

	// The height map knows nothing about trees. If the spawn column
	// grew one, climb until the body fits.
	for tries := 0; tries < world.ChunkSizeY && resolver.Collides(spawn); tries++ {
		spawn[1]++
	}

	tuning := player.Tuning{
		WalkSpeed:    cfg.Player.WalkSpeed,
		JumpSpeed:    cfg.Player.JumpSpeed,
		Gravity:      cfg.Player.Gravity,
		MaxFallSpeed: cfg.Player.MaxFallSpeed,
	}

	e := &Engine{
		log:      log,
		registry: reg,
		store:    store,
		meshes:   meshes,
		pipeline: pipeline,
		streamer: streamer,
		resolver: resolver,
		caster:   caster,
		player:   player.NewPlayer(resolver, tuning, spawn),
	}

	log.Info("engine ready",
		"seed", cfg.Seed,
		"chunks", store.Len(),
		"instances", meshes.InstanceCount(),
		"spawn_y", spawn.Y())

	return e
}

// Step advances the simulation by one fixed timestep: move the player,
// apply block edits, reconcile chunk residency, then rebuild whatever
// the edits dirtied. Edits only mark chunks; meshing runs once at the
// end of the step, so a burst of edits never rebuilds a chunk twice.
func (e *Engine) Step(dt float64, in Input) {
	defer profiling.Track("game.Step")()

	e.player.Update(float32(dt), player.MoveIntent{
		Forward:   in.Forward,
		Strafe:    in.Strafe,
		TurnYaw:   in.TurnYaw,
		TurnPitch: in.TurnPitch,
		Jump:      in.Jump,
	})

	if in.Break {
		e.breakBlock()
	}
	if in.Place {
		e.placeBlock(in.PlaceType)
	}

	e.streamer.Update(e.player.Position, false)

	for _, key := range e.store.DrainDirty() {
		e.pipeline.BuildChunk(key)
	}

	e.steps++
}

// breakBlock clears the block under the crosshair.
func (e *Engine) breakBlock() {
	res := e.caster.Cast(e.player.Position, e.player.ViewDir(), physics.MaxReachDistance)
	if !res.Hit {
		return
	}
	e.store.SetBlock(res.Block[0], res.Block[1], res.Block[2], world.BlockTypeAir)
}

// placeBlock fills the empty cell in front of the hit face. Placements
// into occupied cells, or into the player's own bounding volume, are
// refused.
func (e *Engine) placeBlock(bt world.BlockType) {
	if bt == world.BlockTypeAir {
		return
	}
	res := e.caster.Cast(e.player.Position, e.player.ViewDir(), physics.MaxReachDistance)
	if !res.Hit || !res.HasBefore {
		return
	}
	bx, by, bz := res.Before[0], res.Before[1], res.Before[2]
	if e.store.GetBlock(bx, by, bz) != world.BlockTypeAir {
		return
	}
	if e.resolver.OverlapsBlock(e.player.Position, bx, by, bz) {
		return
	}
	e.store.SetBlock(bx, by, bz, bt)
}

func (e *Engine) Player() *player.Player { return e.player }

func (e *Engine) Store() *world.ChunkStore { return e.store }

func (e *Engine) Meshes() *meshing.MeshStore { return e.meshes }

func (e *Engine) Registry() *registry.Registry { return e.registry }

func (e *Engine) Raycaster() *physics.Raycaster { return e.caster }

// Steps returns how many fixed steps have run.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// meshPipeline adapts the mesh builder and mesh store to the streamer's
// sink interface. It also serves edit-driven rebuilds from Step.
type meshPipeline struct {
	builder *meshing.Builder
	store   *world.ChunkStore
	meshes  *meshing.MeshStore
}

var _ world.MeshSink = (*meshPipeline)(nil)

func (mp *meshPipeline) BuildChunk(key world.ChunkKey) {
	mp.meshes.ReplaceChunk(key, mp.builder.Build(key))
	if c := mp.store.Chunk(key); c != nil {
		c.SetClean()
	}
}

func (mp *meshPipeline) DisposeChunk(key world.ChunkKey) {
	mp.meshes.RemoveChunk(key)
}
