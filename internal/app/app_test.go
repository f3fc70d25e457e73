package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrain-flyover/internal/config"
	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/flythrough"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

func TestModeForKey(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		want camera.Mode
		ok   bool
	}{
		{sdl.SCANCODE_0, camera.ModeFree, true},
		{sdl.SCANCODE_1, camera.ModeWalk, true},
		{sdl.SCANCODE_2, camera.ModePath, true},
		{sdl.SCANCODE_3, camera.ModeOrbit, true},
		{sdl.SCANCODE_4, camera.ModeFree, false},
		{sdl.SCANCODE_W, camera.ModeFree, false},
	}
	for _, tt := range tests {
		got, ok := modeForKey(tt.key)
		assert.Equal(t, tt.ok, ok, "key %d", tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestTerrainParams(t *testing.T) {
	tc := config.Default().Terrain
	tc.HeightmapSize = 64
	tc.Seed = 42
	p := terrainParams(tc)

	assert.Equal(t, 64, p.Size)
	assert.Equal(t, int64(42), p.Seed)
	assert.Equal(t, tc.Octaves, p.Octaves)
	assert.Equal(t, tc.Lacunarity, p.Lacunarity)
	assert.Equal(t, tc.HeightScale, p.Scale)
}

func TestProjection(t *testing.T) {
	gc := config.Default().Graphics
	square := projection(gc, 1)
	wide := projection(gc, 2)

	assert.InDelta(t, square[5], square[0], 1e-5)
	assert.InDelta(t, square[0]/2, wide[0], 1e-5)
	assert.Equal(t, math.Perspective(gc.FOVDeg*3.14159265/180, 1, gc.Near, gc.Far)[10], square[10])
}

func TestLoadPathsDefault(t *testing.T) {
	eye, target, err := loadPaths(config.FlythroughConfig{Depth: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, eye.Len())
	assert.Equal(t, 2, target.Len())
	assert.Equal(t, 2, eye.Depth())
	// 3*2^2-1 points per segment.
	assert.Len(t, eye.Points(), 2*11)
}

func TestLoadPathsFromFile(t *testing.T) {
	data, err := flythrough.Default().Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	eye, _, err := loadPaths(config.FlythroughConfig{File: path, Depth: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, eye.Depth())

	_, _, err = loadPaths(config.FlythroughConfig{File: filepath.Join(t.TempDir(), "missing.yaml"), Depth: 5})
	assert.Error(t, err)
}

func TestLoadPathsBadTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
points:
  - {id: 0, pos: [0, 0, 0]}
eye:
  segments: [[0, 0, 0]]
target:
  segments: [[0, 0, 0, 0]]
`), 0644))

	_, _, err := loadPaths(config.FlythroughConfig{File: path, Depth: 1})
	assert.Error(t, err)
}

type fixedView struct{ eye, target math.Vec3 }

func (v fixedView) Eye() math.Vec3    { return v.eye }
func (v fixedView) Target() math.Vec3 { return v.target }
func (v fixedView) Up() math.Vec3     { return math.V3(0, 1, 0) }

func TestLens(t *testing.T) {
	gc := config.Default().Graphics
	v := fixedView{eye: math.V3(0, 0.2, 3), target: math.V3(0, 0.2, 2)}
	l := lens(v, gc, 1.5)

	assert.Equal(t, v.eye, l.Eye)
	assert.Equal(t, v.target, l.Target)
	assert.Equal(t, math.V3(0, 1, 0), l.Up)
	assert.InDelta(t, 0.785398, l.FOVY, 1e-5)
	assert.Equal(t, float32(1.5), l.Aspect)
}

func TestPressedMode(t *testing.T) {
	only := func(want sdl.Scancode) func(sdl.Scancode) bool {
		return func(sc sdl.Scancode) bool { return sc == want }
	}

	m, ok := pressedMode(only(sdl.SCANCODE_2))
	require.True(t, ok)
	assert.Equal(t, camera.ModePath, m)

	m, ok = pressedMode(only(sdl.SCANCODE_3))
	require.True(t, ok)
	assert.Equal(t, camera.ModeOrbit, m)

	_, ok = pressedMode(only(sdl.SCANCODE_P))
	assert.False(t, ok)
}
