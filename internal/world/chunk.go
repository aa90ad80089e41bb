package world

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 128
	ChunkSizeZ = 16

	// ChunkVolume is the cell count of one fully allocated chunk.
	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// ChunkKey addresses one chunk column. Chunks tile the XZ plane; the
// world is exactly one chunk tall.
type ChunkKey struct {
	X, Z int
}

// Chunk is a 16x128x16 column of blocks in a flat array, indexed
// x-major, then y, then z. A new chunk is all Air.
type Chunk struct {
	Key    ChunkKey
	blocks []BlockType
	dirty  bool
}

// NewChunk allocates an empty chunk at the given chunk coordinates.
func NewChunk(key ChunkKey) *Chunk {
	return &Chunk{
		Key:    key,
		blocks: make([]BlockType, ChunkVolume),
	}
}

// blockIndex converts local coordinates to the flat array index.
func blockIndex(x, y, z int) int {
	return x*ChunkSizeY*ChunkSizeZ + y*ChunkSizeZ + z
}

// GetBlock returns the block at local coordinates, or Air when the
// coordinates fall outside the chunk.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if x < 0 || x >= ChunkSizeX || y < 0 || y >= ChunkSizeY || z < 0 || z >= ChunkSizeZ {
		return BlockTypeAir
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock writes the block at local coordinates and reports whether the
// stored value changed. Out-of-bounds writes are ignored; writing the
// value already present leaves the dirty flag untouched.
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) bool {
	if x < 0 || x >= ChunkSizeX || y < 0 || y >= ChunkSizeY || z < 0 || z >= ChunkSizeZ {
		return false
	}
	idx := blockIndex(x, y, z)
	if c.blocks[idx] == blockType {
		return false
	}
	c.blocks[idx] = blockType
	c.dirty = true
	return true
}

// IsAir checks if the block at the specified local coordinates is air.
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// IsDirty returns whether block data changed since the last mesh build.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean after a mesh rebuild.
func (c *Chunk) SetClean() {
	c.dirty = false
}
