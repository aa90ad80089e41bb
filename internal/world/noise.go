package world

import (
	"math"
	"math/rand"
)

// NoiseField is deterministic 2D value noise driven by a seeded
// permutation table. Sampling never mutates the field, so one instance is
// shared by everything that derives terrain from the same seed.
type NoiseField struct {
	perm [512]int
}

// NewNoiseField shuffles the 256 lattice indices from seed and doubles the
// table so corner lookups can run off the end without wrapping checks.
func NewNoiseField(seed int64) *NoiseField {
	n := &NoiseField{}
	p := rand.New(rand.NewSource(seed)).Perm(256)
	for i, v := range p {
		n.perm[i] = v
		n.perm[i+256] = v
	}
	return n
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Value samples one noise layer at (x, y) under the given frequency scale.
// The result is in [-1, 1].
func (n *NoiseField) Value(x, y, scale float64) float64 {
	sx := x * scale
	sy := y * scale

	fx := math.Floor(sx)
	fy := math.Floor(sy)
	xi := int(fx) & 255
	yi := int(fy) & 255

	u := fade(sx - fx)
	v := fade(sy - fy)

	aa := float64(n.perm[n.perm[xi]+yi])
	ba := float64(n.perm[n.perm[xi+1]+yi])
	ab := float64(n.perm[n.perm[xi]+yi+1])
	bb := float64(n.perm[n.perm[xi+1]+yi+1])

	x1 := lerp(aa, ba, u)
	x2 := lerp(ab, bb, u)
	return lerp(x1, x2, v)/255*2 - 1
}

// Octave sums layered Value samples, scaling amplitude by persistence and
// frequency by lacunarity per layer, then normalizes by the total
// amplitude so the result stays in [-1, 1].
func (n *NoiseField) Octave(x, y float64, octaves int, persistence, lacunarity, scale float64) float64 {
	sum := 0.0
	norm := 0.0
	amplitude := 1.0
	frequency := 1.0
	for range octaves {
		sum += n.Value(x*frequency, y*frequency, scale) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
