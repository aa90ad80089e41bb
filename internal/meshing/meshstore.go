package meshing

import (
	"sort"

	"minivox/internal/world"
)

// RenderSink is the hand-off point to the render collaborator. It
// receives complete per-chunk batches and forgets dropped ones; it never
// reads block data.
type RenderSink interface {
	// ReplaceChunk installs the new mesh for a chunk, displacing any
	// previous one.
	ReplaceChunk(key world.ChunkKey, mesh *ChunkMesh)
	// RemoveChunk forgets the mesh for a chunk leaving residency.
	RemoveChunk(key world.ChunkKey)
}

// MeshStore is the in-memory RenderSink the headless engine runs with:
// latest mesh per chunk plus running totals for the stats line. A GPU
// renderer would stand in its place and upload instead of storing.
type MeshStore struct {
	meshes    map[world.ChunkKey]*ChunkMesh
	instances int

	replaced uint64
	removed  uint64
}

var _ RenderSink = (*MeshStore)(nil)

// NewMeshStore creates an empty store.
func NewMeshStore() *MeshStore {
	return &MeshStore{meshes: make(map[world.ChunkKey]*ChunkMesh)}
}

// ReplaceChunk installs mesh under its key.
func (ms *MeshStore) ReplaceChunk(key world.ChunkKey, mesh *ChunkMesh) {
	if old, ok := ms.meshes[key]; ok {
		ms.instances -= old.InstanceCount()
	}
	ms.meshes[key] = mesh
	ms.instances += mesh.InstanceCount()
	ms.replaced++
}

// RemoveChunk drops the mesh for key, if any.
func (ms *MeshStore) RemoveChunk(key world.ChunkKey) {
	if old, ok := ms.meshes[key]; ok {
		ms.instances -= old.InstanceCount()
		delete(ms.meshes, key)
		ms.removed++
	}
}

// Mesh returns the stored mesh for key, or nil.
func (ms *MeshStore) Mesh(key world.ChunkKey) *ChunkMesh {
	return ms.meshes[key]
}

// Len returns the number of stored chunk meshes.
func (ms *MeshStore) Len() int {
	return len(ms.meshes)
}

// InstanceCount returns the total visible blocks across all meshes.
func (ms *MeshStore) InstanceCount() int {
	return ms.instances
}

// Replaced returns how many mesh installs happened over the store's life.
func (ms *MeshStore) Replaced() uint64 {
	return ms.replaced
}

// Removed returns how many meshes were dropped over the store's life.
func (ms *MeshStore) Removed() uint64 {
	return ms.removed
}

// Keys returns the stored chunk keys sorted by X, then Z.
func (ms *MeshStore) Keys() []world.ChunkKey {
	keys := make([]world.ChunkKey, 0, len(ms.meshes))
	for key := range ms.meshes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Z < keys[j].Z
	})
	return keys
}
