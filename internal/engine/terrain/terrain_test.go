package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams(seed int64) Params {
	p := DefaultParams()
	p.Size = 32
	p.Seed = seed
	return p
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(smallParams(7))
	b := Generate(smallParams(7))

	require.Equal(t, 32, a.Size)
	require.Len(t, a.Data, 32*32)
	assert.Equal(t, a.Data, b.Data)

	c := Generate(smallParams(8))
	assert.NotEqual(t, a.Data, c.Data)
}

func TestGenerateHasRelief(t *testing.T) {
	hm := Generate(smallParams(3))
	lo, hi := hm.MinMax()
	assert.Less(t, lo, hi)
}

func TestGenerateScale(t *testing.T) {
	p := smallParams(5)
	base := Generate(p)
	p.Scale = 2
	scaled := Generate(p)

	for i := range base.Data {
		assert.InDelta(t, 2*base.Data[i], scaled.Data[i], 1e-5)
	}
}

func ramp(size int) *Heightmap {
	hm := &Heightmap{Size: size, Data: make([]float32, size*size)}
	for z := range size {
		for x := range size {
			hm.Data[z*size+x] = float32(x) + 100*float32(z)
		}
	}
	return hm
}

func TestAt(t *testing.T) {
	hm := ramp(4)

	tests := []struct {
		x, z int
		want float32
	}{
		{0, 0, 0},
		{3, 0, 3},
		{1, 2, 201},
		{-1, 0, 0},
		{0, 4, 0},
		{4, 4, 0},
	}
	for _, tt := range tests {
		if got := hm.At(tt.x, tt.z); got != tt.want {
			t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestHeightAtWorld(t *testing.T) {
	hm := ramp(4)

	tests := []struct {
		name   string
		wx, wz float32
		want   float32
	}{
		{"corner", -1, -1, 0.2},
		{"center", 0, 0, 202.2},
		{"near far edge", 0.99, 0.99, 303.2},
		{"off map", 1.5, 0, 0},
		{"off map negative", 0, -1.01, 0},
		{"far edge exclusive", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, hm.HeightAtWorld(tt.wx, tt.wz, 0.2), 1e-4)
		})
	}
}

func TestBilinear(t *testing.T) {
	hm := ramp(4)

	// Texel centers return the texel value.
	assert.InDelta(t, 0, hm.Bilinear(-0.75, -0.75), 1e-5)
	assert.InDelta(t, 101, hm.Bilinear(-0.25, -0.25), 1e-5)

	// Halfway between two centers along X.
	assert.InDelta(t, 0.5, hm.Bilinear(-0.5, -0.75), 1e-5)

	// Clamped outside the map.
	assert.InDelta(t, 303, hm.Bilinear(5, 5), 1e-5)
	assert.InDelta(t, 0, hm.Bilinear(-5, -5), 1e-5)

	assert.Zero(t, (&Heightmap{}).Bilinear(0, 0))
}

func TestBuildGrid(t *testing.T) {
	g := BuildGrid(3)

	require.Equal(t, 3, g.Dim)
	require.Len(t, g.Vertices, 3*3*2)
	assert.Equal(t, []float32{-1, 1}, g.Vertices[0:2])
	assert.Equal(t, []float32{0, 0}, g.Vertices[8:10])
	assert.Equal(t, []float32{1, -1}, g.Vertices[16:18])

	want := []uint32{
		3, 0, 4, 1, 5, 2, PrimitiveRestart,
		6, 3, 7, 4, 8, 5, PrimitiveRestart,
	}
	assert.Equal(t, want, g.Indices)
}

func TestBuildGridMinimum(t *testing.T) {
	g := BuildGrid(0)
	assert.Equal(t, 2, g.Dim)
	assert.Len(t, g.Indices, 5)
}
