// Package terrain generates fractal heightmaps and the grid mesh the terrain
// is drawn with.
package terrain

// PrimitiveRestart is the index that ends one triangle strip of a Grid.
const PrimitiveRestart = 0xFFFFFFFF

// Params controls heightmap generation.
type Params struct {
	Size       int     // texels per side
	Seed       int64   // noise seed
	Frequency  float64 // base frequency over the [-1,1] square
	Gain       float64 // spectral exponent H; octave i is weighted lacunarity^(-H*i)
	Lacunarity float64 // frequency multiplier per octave
	Octaves    int32
	Scale      float32 // multiplier applied to every sample
}

// DefaultParams returns the settings of the stock scene.
func DefaultParams() Params {
	return Params{
		Size:       1024,
		Seed:       1,
		Frequency:  0.9,
		Gain:       1.0,
		Lacunarity: 2.7,
		Octaves:    8,
		Scale:      1,
	}
}

// Heightmap is a square grid of heights covering world X and Z in [-1, 1].
// Data is row-major with rows running along +Z.
type Heightmap struct {
	Size int
	Data []float32
}

// Grid is a flat dim x dim mesh over [-1, 1]. Vertices hold x,z pairs; the
// vertex shader lifts them with the heightmap.
type Grid struct {
	Dim      int
	Vertices []float32
	Indices  []uint32
}
