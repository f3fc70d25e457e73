package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

const eps = 1e-5

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want math.Vec3
	}{
		{"overhead", Sun{Azimuth: 0, Elevation: 90}, math.V3(0, 1, 0)},
		{"north horizon", Sun{Azimuth: 0, Elevation: 0}, math.V3(0, 0, 1)},
		{"east horizon", Sun{Azimuth: 90, Elevation: 0}, math.V3(1, 0, 0)},
		{"below horizon clamps", Sun{Azimuth: 0, Elevation: -30}, math.V3(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.sun.Direction()
			assert.InDelta(t, tt.want.X, d.X, eps)
			assert.InDelta(t, tt.want.Y, d.Y, eps)
			assert.InDelta(t, tt.want.Z, d.Z, eps)
			assert.InDelta(t, 1, d.Length(), eps)
		})
	}
}

func TestLightDirOpposesDirection(t *testing.T) {
	s := Sun{Azimuth: 30, Elevation: 45}
	assert.InDelta(t, -1, s.Direction().Dot(s.LightDir()), eps)
	assert.Less(t, s.LightDir().Y, float32(0))
}

func TestSunFromDirection(t *testing.T) {
	want := Sun{Azimuth: 200, Elevation: 35}
	got := SunFromDirection(want.LightDir().Scale(3))
	assert.InDelta(t, want.Azimuth, got.Azimuth, 1e-3)
	assert.InDelta(t, want.Elevation, got.Elevation, 1e-3)

	assert.Equal(t, Sun{Elevation: 90}, SunFromDirection(math.Vec3{}))
}
