package world

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// HeightField is a smooth 2D function sampled once per (x, z) column.
// Value must be deterministic and lie in [0,1].
type HeightField interface {
	Value(x, z int) float64
}

// SineField is the pseudo-noise of the prototypes: two sine waves at different
// frequencies and phases, normalized to [0,1].
type SineField struct {
	Phase float64
}

// NewSineField derives the wave phase from the seed
func NewSineField(seed int64) SineField {
	h := hash2(0, 0, seed)
	return SineField{Phase: float64(h&0xFFFF) / float64(0xFFFF) * 2 * math.Pi}
}

func (f SineField) Value(x, z int) float64 {
	fx, fz := float64(x), float64(z)
	v := math.Sin(fx*0.30+fz*0.20+f.Phase) +
		math.Sin(fx*0.11-fz*0.37+f.Phase*1.7+1.3)
	return clamp01((v + 2) / 4)
}

// PerlinField samples seeded Perlin noise
type PerlinField struct {
	noise *perlin.Perlin
	scale float64
}

func NewPerlinField(seed int64) *PerlinField {
	alpha := 2.0  // smoothing
	beta := 2.0   // frequency
	n := int32(3) // octaves
	return &PerlinField{
		noise: perlin.NewPerlin(alpha, beta, n, seed),
		scale: 1.0 / 8.0,
	}
}

func (f *PerlinField) Value(x, z int) float64 {
	// Noise2D is roughly in [-1,1]
	n := f.noise.Noise2D(float64(x)*f.scale+0.5, float64(z)*f.scale+0.5)
	return clamp01((n + 1) / 2)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0xC2B2AE3D27D4EB4F + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// Streams used by the generator so each pass draws from its own sequence
const (
	streamTerrain int64 = iota + 1
	streamTrees
)

// columnRand returns the random source for one column and pass.
// Sharing nothing between columns keeps the terrain pass column-local.
func columnRand(seed int64, x, z int, stream int64) *rand.Rand {
	h := hash2(int64(x), int64(z), seed^(stream*0x5851F42D4C957F2D))
	return rand.New(rand.NewSource(int64(h)))
}
