package world

import "testing"

// addEmptyChunk installs an all-air chunk and returns it.
func addEmptyChunk(cs *ChunkStore, x, z int) *Chunk {
	c := NewChunk(ChunkKey{X: x, Z: z})
	cs.AddChunk(c)
	return c
}

// TestKeyForBlock verifies world-to-chunk mapping, negative coordinates
// included
func TestKeyForBlock(t *testing.T) {
	cases := []struct {
		wx, wz int
		key    ChunkKey
	}{
		{0, 0, ChunkKey{0, 0}},
		{15, 15, ChunkKey{0, 0}},
		{16, 0, ChunkKey{1, 0}},
		{-1, 0, ChunkKey{-1, 0}},
		{-16, -16, ChunkKey{-1, -1}},
		{-17, 31, ChunkKey{-2, 1}},
	}
	for _, c := range cases {
		if got := KeyForBlock(c.wx, c.wz); got != c.key {
			t.Errorf("KeyForBlock(%d,%d) = %+v, expected %+v", c.wx, c.wz, got, c.key)
		}
	}
}

// TestGetBlockUnloaded verifies reads in non-resident chunks return Air
func TestGetBlockUnloaded(t *testing.T) {
	cs := NewChunkStore()
	if b := cs.GetBlock(100, 50, -300); b != BlockTypeAir {
		t.Errorf("expected Air in unloaded chunk, got %v", b)
	}
}

// TestGetBlockVerticalBounds verifies reads above and below the world
// return Air even in a loaded chunk
func TestGetBlockVerticalBounds(t *testing.T) {
	cs := NewChunkStore()
	c := addEmptyChunk(cs, 0, 0)
	c.SetBlock(0, 0, 0, BlockTypeStone)

	if b := cs.GetBlock(0, -1, 0); b != BlockTypeAir {
		t.Errorf("expected Air below the world, got %v", b)
	}
	if b := cs.GetBlock(0, ChunkSizeY, 0); b != BlockTypeAir {
		t.Errorf("expected Air above the world, got %v", b)
	}
}

// TestSetGetRoundtrip verifies a write through the store is visible to
// the next read, negative coordinates included
func TestSetGetRoundtrip(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)
	addEmptyChunk(cs, -1, -1)

	cs.SetBlock(5, 20, 9, BlockTypeWood)
	if b := cs.GetBlock(5, 20, 9); b != BlockTypeWood {
		t.Errorf("expected Wood at (5,20,9), got %v", b)
	}

	cs.SetBlock(-3, 20, -7, BlockTypeStone)
	if b := cs.GetBlock(-3, 20, -7); b != BlockTypeStone {
		t.Errorf("expected Stone at (-3,20,-7), got %v", b)
	}
}

// TestSetBlockUnloadedNoop verifies writes into non-resident chunks and
// outside the vertical range change nothing
func TestSetBlockUnloadedNoop(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)

	cs.SetBlock(200, 20, 200, BlockTypeStone) // chunk (12,12) not resident
	if b := cs.GetBlock(200, 20, 200); b != BlockTypeAir {
		t.Errorf("write into unloaded chunk took effect: got %v", b)
	}

	cs.SetBlock(5, -1, 5, BlockTypeStone)
	cs.SetBlock(5, ChunkSizeY, 5, BlockTypeStone)
	if n := cs.DirtyCount(); n != 0 {
		t.Errorf("no-op writes left %d dirty chunks", n)
	}
}

// TestSetBlockMarksDirtyOnce verifies a changing write queues exactly the
// owning chunk, and repeating the same write queues nothing
func TestSetBlockMarksDirtyOnce(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)

	cs.SetBlock(8, 30, 8, BlockTypeStone)
	keys := cs.DrainDirty()
	if len(keys) != 1 || keys[0] != (ChunkKey{0, 0}) {
		t.Fatalf("expected dirty [{0 0}], got %v", keys)
	}

	// Same value again: stored content is unchanged, so nothing queues.
	cs.SetBlock(8, 30, 8, BlockTypeStone)
	if keys := cs.DrainDirty(); len(keys) != 0 {
		t.Errorf("idempotent write queued %v", keys)
	}
}

// TestBorderEditMarksNeighbor verifies an edit on a chunk border queues
// the edge-adjacent neighbor when resident and skips it when not
func TestBorderEditMarksNeighbor(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)
	addEmptyChunk(cs, -1, 0)

	// Local x == 0 with the -x neighbor resident: both queue.
	cs.SetBlock(0, 30, 8, BlockTypeStone)
	keys := cs.DrainDirty()
	if len(keys) != 2 {
		t.Fatalf("expected 2 dirty chunks, got %v", keys)
	}
	if keys[0] != (ChunkKey{-1, 0}) || keys[1] != (ChunkKey{0, 0}) {
		t.Fatalf("expected [{-1 0} {0 0}], got %v", keys)
	}

	// Local x == 15 with the +x neighbor absent: only the edited chunk.
	cs.SetBlock(15, 30, 8, BlockTypeStone)
	keys = cs.DrainDirty()
	if len(keys) != 1 || keys[0] != (ChunkKey{0, 0}) {
		t.Errorf("expected [{0 0}] with absent neighbor, got %v", keys)
	}
}

// TestCornerEditSkipsDiagonal verifies a corner edit queues the two edge
// neighbors but never the diagonal chunk
func TestCornerEditSkipsDiagonal(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)
	addEmptyChunk(cs, -1, 0)
	addEmptyChunk(cs, 0, -1)
	addEmptyChunk(cs, -1, -1) // diagonal, must stay clean

	cs.SetBlock(0, 30, 0, BlockTypeStone)
	keys := cs.DrainDirty()
	if len(keys) != 3 {
		t.Fatalf("expected 3 dirty chunks, got %v", keys)
	}
	for _, key := range keys {
		if key == (ChunkKey{-1, -1}) {
			t.Errorf("diagonal neighbor queued by corner edit")
		}
	}
}

// TestInteriorEditMarksOnlyOwner verifies an interior edit queues exactly
// one chunk
func TestInteriorEditMarksOnlyOwner(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)
	addEmptyChunk(cs, 1, 0)
	addEmptyChunk(cs, 0, 1)

	cs.SetBlock(8, 30, 8, BlockTypeStone)
	keys := cs.DrainDirty()
	if len(keys) != 1 || keys[0] != (ChunkKey{0, 0}) {
		t.Errorf("interior edit queued %v, expected [{0 0}]", keys)
	}
}

// TestRemoveChunkDropsDirtyMark verifies an evicted chunk leaves no
// pending remesh behind
func TestRemoveChunkDropsDirtyMark(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 0, 0)

	cs.SetBlock(8, 30, 8, BlockTypeStone)
	cs.RemoveChunk(ChunkKey{0, 0})

	if keys := cs.DrainDirty(); len(keys) != 0 {
		t.Errorf("removed chunk still queued: %v", keys)
	}
	if cs.HasChunk(ChunkKey{0, 0}) {
		t.Errorf("chunk still resident after RemoveChunk")
	}
}

// TestKeysSorted verifies Keys returns a deterministic order
func TestKeysSorted(t *testing.T) {
	cs := NewChunkStore()
	addEmptyChunk(cs, 2, 1)
	addEmptyChunk(cs, -1, 5)
	addEmptyChunk(cs, 2, -4)
	addEmptyChunk(cs, 0, 0)

	keys := cs.Keys()
	expected := []ChunkKey{{-1, 5}, {0, 0}, {2, -4}, {2, 1}}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("keys[%d] = %+v, expected %+v", i, keys[i], key)
		}
	}
}
