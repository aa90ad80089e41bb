package world

import "testing"

// TestNewChunkAllAir verifies a fresh chunk reads Air everywhere
func TestNewChunkAllAir(t *testing.T) {
	c := NewChunk(ChunkKey{X: 3, Z: -2})

	for _, p := range [][3]int{{0, 0, 0}, {15, 127, 15}, {8, 64, 8}, {0, 127, 15}} {
		if b := c.GetBlock(p[0], p[1], p[2]); b != BlockTypeAir {
			t.Errorf("expected Air at (%d,%d,%d), got %v", p[0], p[1], p[2], b)
		}
	}
	if c.IsDirty() {
		t.Errorf("fresh chunk reported dirty")
	}
}

// TestChunkSetGetRoundtrip verifies a write is visible to the next read
func TestChunkSetGetRoundtrip(t *testing.T) {
	c := NewChunk(ChunkKey{})

	if changed := c.SetBlock(5, 40, 9, BlockTypeStone); !changed {
		t.Fatalf("SetBlock reported no change for a new value")
	}
	if b := c.GetBlock(5, 40, 9); b != BlockTypeStone {
		t.Errorf("expected Stone at (5,40,9), got %v", b)
	}
	if !c.IsDirty() {
		t.Errorf("chunk not dirty after a changing write")
	}
}

// TestChunkOutOfBounds verifies reads outside the chunk return Air and
// writes outside it are ignored
func TestChunkOutOfBounds(t *testing.T) {
	c := NewChunk(ChunkKey{})

	oob := [][3]int{
		{-1, 0, 0}, {16, 0, 0},
		{0, -1, 0}, {0, 128, 0},
		{0, 0, -1}, {0, 0, 16},
	}
	for _, p := range oob {
		if b := c.GetBlock(p[0], p[1], p[2]); b != BlockTypeAir {
			t.Errorf("expected Air outside bounds at (%d,%d,%d), got %v", p[0], p[1], p[2], b)
		}
		if changed := c.SetBlock(p[0], p[1], p[2], BlockTypeStone); changed {
			t.Errorf("SetBlock outside bounds at (%d,%d,%d) reported a change", p[0], p[1], p[2])
		}
	}
	if c.IsDirty() {
		t.Errorf("out-of-bounds writes dirtied the chunk")
	}
}

// TestChunkSetSameValueKeepsClean verifies writing the stored value again
// does not dirty the chunk
func TestChunkSetSameValueKeepsClean(t *testing.T) {
	c := NewChunk(ChunkKey{})
	c.SetBlock(1, 2, 3, BlockTypeDirt)
	c.SetClean()

	if changed := c.SetBlock(1, 2, 3, BlockTypeDirt); changed {
		t.Errorf("SetBlock reported a change for the value already stored")
	}
	if c.IsDirty() {
		t.Errorf("idempotent write dirtied the chunk")
	}
}

// TestChunkIsAir verifies the air check helper
func TestChunkIsAir(t *testing.T) {
	c := NewChunk(ChunkKey{})
	c.SetBlock(0, 10, 0, BlockTypeWood)

	if c.IsAir(0, 10, 0) {
		t.Errorf("IsAir true for a wood cell")
	}
	if !c.IsAir(0, 11, 0) {
		t.Errorf("IsAir false for an empty cell")
	}
}
