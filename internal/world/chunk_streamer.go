package world

import (
	"fmt"
	"log/slog"
	"math"

	"minivox/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshSink receives chunk lifecycle events from the streamer. The game
// layer backs it with the mesh builder and the render-side mesh store.
type MeshSink interface {
	// BuildChunk (re)builds the mesh for a resident chunk.
	BuildChunk(key ChunkKey)
	// DisposeChunk drops the mesh for a chunk leaving residency.
	DisposeChunk(key ChunkKey)
}

// ChunkStreamer keeps the resident chunk set matched to a circular
// footprint around the viewer: chunks entering the circle are generated
// and meshed, chunks leaving it are disposed, and everything in between
// is left alone.
type ChunkStreamer struct {
	radius int

	viewer    ChunkKey
	hasViewer bool

	// Dependencies
	store *ChunkStore
	gen   TerrainGenerator
	sink  MeshSink
	log   *slog.Logger
}

// NewChunkStreamer creates a streamer with the given footprint radius in
// chunks.
func NewChunkStreamer(store *ChunkStore, gen TerrainGenerator, sink MeshSink, radius int, log *slog.Logger) *ChunkStreamer {
	return &ChunkStreamer{
		radius: radius,
		store:  store,
		gen:    gen,
		sink:   sink,
		log:    log,
	}
}

// Radius returns the footprint radius in chunks.
func (cs *ChunkStreamer) Radius() int {
	return cs.radius
}

// Update reconciles residency around the viewer position. It returns
// immediately when the viewer is still in the chunk it occupied on the
// previous call, unless force is set. The first call always reconciles.
func (cs *ChunkStreamer) Update(viewerPos mgl32.Vec3, force bool) {
	defer profiling.Track("world.StreamUpdate")()

	center := KeyForBlock(int(math.Floor(float64(viewerPos.X()))), int(math.Floor(float64(viewerPos.Z()))))
	if cs.hasViewer && center == cs.viewer && !force {
		return
	}
	cs.viewer = center
	cs.hasViewer = true

	r2 := cs.radius * cs.radius

	// Unload pass first so a long hop releases before it allocates.
	for _, key := range cs.store.Keys() {
		dx := key.X - center.X
		dz := key.Z - center.Z
		if dx*dx+dz*dz > r2 {
			cs.sink.DisposeChunk(key)
			cs.store.RemoveChunk(key)
		}
	}

	// Load pass: generate and mesh whatever the footprint now covers.
	for dx := -cs.radius; dx <= cs.radius; dx++ {
		for dz := -cs.radius; dz <= cs.radius; dz++ {
			if dx*dx+dz*dz > r2 {
				continue
			}
			key := ChunkKey{X: center.X + dx, Z: center.Z + dz}
			if cs.store.HasChunk(key) {
				continue
			}
			cs.loadChunk(key)
		}
	}
}

// loadChunk generates, installs and meshes one chunk. A panic during
// generation is contained to that chunk: the failure is logged and the
// chunk skipped, leaving a hole instead of taking the step loop down.
func (cs *ChunkStreamer) loadChunk(key ChunkKey) {
	defer func() {
		if r := recover(); r != nil {
			cs.log.Error("chunk generation failed",
				"cx", key.X, "cz", key.Z, "err", fmt.Sprint(r))
		}
	}()

	chunk := cs.gen.Generate(key)
	cs.store.AddChunk(chunk)
	cs.sink.BuildChunk(key)
	chunk.SetClean()
}
