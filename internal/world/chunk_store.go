package world

import "sort"

// ChunkStore owns every resident chunk, keyed by chunk coordinate, and
// tracks which chunks need a mesh rebuild. Accessed only from the world
// step goroutine.
type ChunkStore struct {
	chunks map[ChunkKey]*Chunk
	dirty  map[ChunkKey]struct{}
}

// NewChunkStore creates an empty store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkKey]*Chunk),
		dirty:  make(map[ChunkKey]struct{}),
	}
}

// KeyForBlock returns the chunk key owning world column (wx, wz).
func KeyForBlock(wx, wz int) ChunkKey {
	return ChunkKey{X: floorDiv(wx, ChunkSizeX), Z: floorDiv(wz, ChunkSizeZ)}
}

// GetBlock returns the block at world coordinates. Reads above or below
// the vertical range, or in a chunk that is not resident, return Air: the
// world reads as empty until loaded.
func (cs *ChunkStore) GetBlock(wx, wy, wz int) BlockType {
	if wy < 0 || wy >= ChunkSizeY {
		return BlockTypeAir
	}
	chunk, ok := cs.chunks[KeyForBlock(wx, wz)]
	if !ok {
		return BlockTypeAir
	}
	return chunk.GetBlock(mod(wx, ChunkSizeX), wy, mod(wz, ChunkSizeZ))
}

// SetBlock writes the block at world coordinates. Writes outside the
// vertical range or into a non-resident chunk are silent no-ops. A write
// that changes the stored value marks the owning chunk dirty; a write on
// a chunk border also marks the edge-adjacent resident neighbor, whose
// mesh reads across the boundary.
func (cs *ChunkStore) SetBlock(wx, wy, wz int, blockType BlockType) {
	if wy < 0 || wy >= ChunkSizeY {
		return
	}
	key := KeyForBlock(wx, wz)
	chunk, ok := cs.chunks[key]
	if !ok {
		return
	}
	lx := mod(wx, ChunkSizeX)
	lz := mod(wz, ChunkSizeZ)
	if !chunk.SetBlock(lx, wy, lz, blockType) {
		return
	}
	cs.dirty[key] = struct{}{}

	// Edge neighbors only, never diagonals. A corner edit reaches the
	// x neighbor and the z neighbor but not the chunk across the corner.
	if lx == 0 {
		cs.markDirty(ChunkKey{X: key.X - 1, Z: key.Z})
	} else if lx == ChunkSizeX-1 {
		cs.markDirty(ChunkKey{X: key.X + 1, Z: key.Z})
	}
	if lz == 0 {
		cs.markDirty(ChunkKey{X: key.X, Z: key.Z - 1})
	} else if lz == ChunkSizeZ-1 {
		cs.markDirty(ChunkKey{X: key.X, Z: key.Z + 1})
	}
}

// markDirty queues a chunk for remesh if it is resident.
func (cs *ChunkStore) markDirty(key ChunkKey) {
	if chunk, ok := cs.chunks[key]; ok {
		chunk.dirty = true
		cs.dirty[key] = struct{}{}
	}
}

// Chunk returns the resident chunk for key, or nil.
func (cs *ChunkStore) Chunk(key ChunkKey) *Chunk {
	return cs.chunks[key]
}

// HasChunk reports whether the chunk for key is resident.
func (cs *ChunkStore) HasChunk(key ChunkKey) bool {
	_, ok := cs.chunks[key]
	return ok
}

// AddChunk installs a chunk under its key, replacing any previous one.
func (cs *ChunkStore) AddChunk(chunk *Chunk) {
	cs.chunks[chunk.Key] = chunk
}

// RemoveChunk drops a chunk and any pending remesh mark for it.
func (cs *ChunkStore) RemoveChunk(key ChunkKey) {
	delete(cs.chunks, key)
	delete(cs.dirty, key)
}

// Len returns the number of resident chunks.
func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// Keys returns all resident chunk keys sorted by X, then Z.
func (cs *ChunkStore) Keys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(cs.chunks))
	for key := range cs.chunks {
		keys = append(keys, key)
	}
	sortChunkKeys(keys)
	return keys
}

// DrainDirty empties the remesh queue and returns its keys sorted by X,
// then Z, so rebuild order is deterministic.
func (cs *ChunkStore) DrainDirty() []ChunkKey {
	if len(cs.dirty) == 0 {
		return nil
	}
	keys := make([]ChunkKey, 0, len(cs.dirty))
	for key := range cs.dirty {
		keys = append(keys, key)
		delete(cs.dirty, key)
	}
	sortChunkKeys(keys)
	return keys
}

// DirtyCount returns the number of chunks waiting for a remesh.
func (cs *ChunkStore) DirtyCount() int {
	return len(cs.dirty)
}

func sortChunkKeys(keys []ChunkKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Z < keys[j].Z
	})
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

func mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
