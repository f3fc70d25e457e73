// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Sun is a directional light placed by compass angles in degrees.
// Azimuth turns around +Y starting at +Z; Elevation is measured from the
// horizon and is clamped to [0, 90].
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	lon := s.Azimuth * math32.Pi / 180
	lat := min(max(s.Elevation, 0), 90) * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}

// LightDir returns the direction the light travels, away from the sun.
func (s Sun) LightDir() math.Vec3 {
	return s.Direction().Scale(-1)
}

// SunFromDirection recovers the angles of a sun that shines along dir.
// A zero vector gives a sun straight overhead.
func SunFromDirection(dir math.Vec3) Sun {
	to := dir.Scale(-1)
	l := to.Length()
	if l == 0 {
		return Sun{Elevation: 90}
	}
	to = to.Scale(1 / l)
	az := math32.Atan2(to.X, to.Z) * 180 / math32.Pi
	if az < 0 {
		az += 360
	}
	return Sun{
		Azimuth:   az,
		Elevation: math32.Asin(to.Y) * 180 / math32.Pi,
	}
}
