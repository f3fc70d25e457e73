// Package water provides the water plane geometry and the mirrored camera
// used to render its reflection.
package water

import "github.com/Faultbox/terrain-flyover/pkg/math"

// Plane holds water plane geometry ready for GPU upload.
type Plane struct {
	Vertices []float32 // x,y,z for each of the 4 corners
	Level    float32   // water height in world Y
}

// BuildPlane creates a quad at height level covering the given bounds.
// Corners are ordered for a triangle fan.
func BuildPlane(minX, maxX, minZ, maxZ, level float32) *Plane {
	return &Plane{
		Vertices: []float32{
			minX, level, minZ,
			maxX, level, minZ,
			maxX, level, maxZ,
			minX, level, maxZ,
		},
		Level: level,
	}
}

// BuildPlaneWithPadding creates a water plane extending padding units past
// the bounds on every side.
func BuildPlaneWithPadding(minX, maxX, minZ, maxZ, level, padding float32) *Plane {
	return BuildPlane(minX-padding, maxX+padding, minZ-padding, maxZ+padding, level)
}

// DefaultPadding is the margin added around the [-1, 1] terrain square.
// Zero keeps the water edge flush with the terrain edge.
const DefaultPadding = 0

// Camera is an eye, target and up triple.
type Camera struct {
	Eye, Target, Up math.Vec3
}

// Mirror reflects a camera across the plane y = level. Reflection reverses
// handedness, so the image rendered from the mirrored camera is flipped
// horizontally and the water shader samples it at (1-u, v).
func Mirror(eye, target, up math.Vec3, level float32) Camera {
	reflect := func(p math.Vec3) math.Vec3 {
		return math.Vec3{X: p.X, Y: 2*level - p.Y, Z: p.Z}
	}
	return Camera{
		Eye:    reflect(eye),
		Target: reflect(target),
		Up:     math.Vec3{X: up.X, Y: -up.Y, Z: up.Z},
	}
}

// ViewMatrix returns the look-at matrix of the camera.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}
