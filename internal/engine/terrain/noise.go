package terrain

import (
	"math"
	"time"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/logger"
)

// Generate fills a heightmap with fractal Brownian motion noise.
// Texel (i, j) samples the noise at the world position it covers, so the same
// Params always produce the same terrain.
func Generate(p Params) *Heightmap {
	start := time.Now()

	size := max(p.Size, 1)
	octaves := max(p.Octaves, 1)
	// go-perlin divides octave i's amplitude by alpha^i.
	alpha := math.Pow(p.Lacunarity, p.Gain)
	noise := perlin.NewPerlin(alpha, p.Lacunarity, octaves, p.Seed)

	hm := &Heightmap{Size: size, Data: make([]float32, size*size)}
	step := 2.0 / float64(size)
	for j := range size {
		wz := -1 + (float64(j)+0.5)*step
		for i := range size {
			wx := -1 + (float64(i)+0.5)*step
			h := noise.Noise2D(wx*p.Frequency, wz*p.Frequency)
			hm.Data[j*size+i] = float32(h) * p.Scale
		}
	}

	lo, hi := hm.MinMax()
	logger.Debug("heightmap generated",
		zap.Int("size", size),
		zap.Int64("seed", p.Seed),
		zap.Float32("min", lo),
		zap.Float32("max", hi),
		zap.Duration("took", time.Since(start)))
	return hm
}
