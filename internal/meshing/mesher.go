package meshing

import (
	"minivox/internal/profiling"
	"minivox/internal/registry"
	"minivox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockSource is the chunk access the builder needs: direct cell reads
// inside the chunk being meshed, and world-coordinate reads for neighbor
// tests that cross a chunk border.
type BlockSource interface {
	GetBlock(wx, wy, wz int) world.BlockType
	Chunk(key world.ChunkKey) *world.Chunk
}

// ChunkMesh is one chunk's renderable content: for each block type, the
// world-space centers of every visible block of that type. A renderer
// draws the shared unit cube once per entry, one batch per type.
type ChunkMesh struct {
	Key       world.ChunkKey
	Instances map[world.BlockType][]mgl32.Vec3
}

// InstanceCount returns the total number of visible blocks in the mesh.
func (m *ChunkMesh) InstanceCount() int {
	n := 0
	for _, list := range m.Instances {
		n += len(list)
	}
	return n
}

// neighborOffsets are the six axis directions checked for exposure.
var neighborOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// Builder turns chunk block data into per-type instance batches.
type Builder struct {
	source BlockSource
	reg    *registry.Registry
}

// NewBuilder creates a mesh builder reading blocks from source.
func NewBuilder(source BlockSource, reg *registry.Registry) *Builder {
	return &Builder{source: source, reg: reg}
}

// Build meshes one chunk. A block is visible when any of its six axis
// neighbors is transparent; fully enclosed blocks are dropped. Exposure
// is tested per block, so one buried block costs six neighbor reads and
// nothing else.
func (b *Builder) Build(key world.ChunkKey) *ChunkMesh {
	defer profiling.Track("meshing.Build")()

	mesh := &ChunkMesh{Key: key, Instances: make(map[world.BlockType][]mgl32.Vec3)}
	c := b.source.Chunk(key)
	if c == nil {
		return mesh
	}

	baseX := key.X * world.ChunkSizeX
	baseZ := key.Z * world.ChunkSizeZ

	for lx := range world.ChunkSizeX {
		for lz := range world.ChunkSizeZ {
			for ly := range world.ChunkSizeY {
				bt := c.GetBlock(lx, ly, lz)
				if bt == world.BlockTypeAir {
					continue
				}
				if !b.exposed(c, baseX, baseZ, lx, ly, lz) {
					continue
				}

				// Resolves unknown types to the placeholder so they show
				// up loud instead of vanishing.
				b.reg.Lookup(bt)

				center := mgl32.Vec3{
					float32(baseX+lx) + 0.5,
					float32(ly) + 0.5,
					float32(baseZ+lz) + 0.5,
				}
				mesh.Instances[bt] = append(mesh.Instances[bt], center)
			}
		}
	}

	return mesh
}

// exposed reports whether any of the six axis neighbors is transparent.
// Neighbors inside the chunk read it directly; neighbors across a border
// go through the source, so edits in adjacent chunks change the answer.
func (b *Builder) exposed(c *world.Chunk, baseX, baseZ, lx, ly, lz int) bool {
	for _, d := range neighborOffsets {
		nx, ny, nz := lx+d[0], ly+d[1], lz+d[2]

		var nt world.BlockType
		if nx >= 0 && nx < world.ChunkSizeX && nz >= 0 && nz < world.ChunkSizeZ {
			// Vertical overflow reads Air from the chunk itself, matching
			// the store's view of the world above and below.
			nt = c.GetBlock(nx, ny, nz)
		} else {
			nt = b.source.GetBlock(baseX+nx, ny, baseZ+nz)
		}

		if b.reg.IsTransparent(nt) {
			return true
		}
	}
	return false
}
