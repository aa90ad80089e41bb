package world

import (
	"math"
	"math/rand"
)

// Terrain shape. Heights derive from the vertical chunk bound so the
// proportions survive a ChunkSizeY change.
const (
	terrainOctaves     = 5
	terrainPersistence = 0.5
	terrainLacunarity  = 2.0
	terrainScale       = 0.012

	terrainBaseHeight = ChunkSizeY * 3 / 10
	terrainAmplitude  = ChunkSizeY / 4

	treeChance   = 0.015
	leavesRadius = 2.5
	leavesReach  = 2 // an offset of 3 on any single axis already exceeds leavesRadius
)

// TerrainGenerator produces chunk content for the streamer.
type TerrainGenerator interface {
	// Generate builds the chunk at key from scratch.
	Generate(key ChunkKey) *Chunk
	// HeightAt returns the terrain column height at a world column: the
	// y of the first air cell above the grass surface.
	HeightAt(wx, wz int) int
}

// Generator fills chunks with noise-shaped terrain and sparse trees.
// Every block it writes is a pure function of the world seed and the
// chunk coordinate, so an evicted chunk regenerates bit for bit.
type Generator struct {
	seed  int64
	noise *NoiseField
}

var _ TerrainGenerator = (*Generator)(nil)

// NewGenerator creates a terrain generator for the given world seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:  seed,
		noise: NewNoiseField(seed),
	}
}

// HeightAt computes the column height at world (wx, wz). Grass caps the
// column at HeightAt-1.
func (g *Generator) HeightAt(wx, wz int) int {
	n := g.noise.Octave(float64(wx), float64(wz), terrainOctaves, terrainPersistence, terrainLacunarity, terrainScale)
	h := terrainBaseHeight + int(math.Floor(n*terrainAmplitude))
	if h < 1 {
		h = 1
	}
	if h > ChunkSizeY {
		h = ChunkSizeY
	}
	return h
}

// Generate builds the chunk at key. Writes never leave the chunk: a tree
// whose canopy would spill across the border is clipped there, so
// generating a chunk cannot dirty its neighbors.
func (g *Generator) Generate(key ChunkKey) *Chunk {
	c := NewChunk(key)
	rng := rand.New(rand.NewSource(g.chunkSeed(key)))

	// Column pass: stone core, dirt cover, one grass cap per column.
	var heights [ChunkSizeX * ChunkSizeZ]int
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			height := g.HeightAt(key.X*ChunkSizeX+lx, key.Z*ChunkSizeZ+lz)
			heights[lx*ChunkSizeZ+lz] = height
			stoneTop := height - (3 + rng.Intn(3))
			for ly := range height {
				switch {
				case ly < stoneTop:
					c.SetBlock(lx, ly, lz, BlockTypeStone)
				case ly < height-1:
					c.SetBlock(lx, ly, lz, BlockTypeDirt)
				default:
					c.SetBlock(lx, ly, lz, BlockTypeGrass)
				}
			}
		}
	}

	// Vegetation pass: each grass-topped column may root a tree.
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			surface := heights[lx*ChunkSizeZ+lz]
			if c.GetBlock(lx, surface-1, lz) != BlockTypeGrass {
				continue
			}
			if rng.Float64() >= treeChance {
				continue
			}
			g.plantTree(c, rng, lx, surface, lz)
		}
	}

	return c
}

// plantTree grows a trunk with a rough sphere of leaves around its top.
// Leaves land only in cells that are still air, so trunks and terrain
// stay intact.
func (g *Generator) plantTree(c *Chunk, rng *rand.Rand, lx, surface, lz int) {
	trunk := 4 + rng.Intn(4)
	for i := range trunk {
		c.SetBlock(lx, surface+i, lz, BlockTypeWood)
	}

	topY := surface + trunk - 1
	for dx := -leavesReach; dx <= leavesReach; dx++ {
		for dy := -leavesReach; dy <= leavesReach; dy++ {
			for dz := -leavesReach; dz <= leavesReach; dz++ {
				if float64(dx*dx+dy*dy+dz*dz) > leavesRadius*leavesRadius {
					continue
				}
				bx, by, bz := lx+dx, topY+dy, lz+dz
				if bx < 0 || bx >= ChunkSizeX || bz < 0 || bz >= ChunkSizeZ {
					continue
				}
				if !c.IsAir(bx, by, bz) {
					continue
				}
				c.SetBlock(bx, by, bz, BlockTypeLeaves)
			}
		}
	}
}

// chunkSeed derives the per-chunk RNG stream from the world seed and the
// chunk coordinate with a splitmix-style finalizer.
func (g *Generator) chunkSeed(key ChunkKey) int64 {
	ux := uint64(uint32(int32(key.X)))
	uz := uint64(uint32(int32(key.Z)))
	v := uint64(g.seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uz * 0xbf58476d1ce4e5b9)
	return int64(mix64(v))
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
