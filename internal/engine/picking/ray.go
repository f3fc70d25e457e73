// Package picking casts rays from the screen into the terrain.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Lens describes a perspective camera.
type Lens struct {
	Eye, Target, Up math.Vec3
	FOVY            float32 // radians
	Aspect          float32
}

// ScreenToRay converts pixel coordinates to a world-space ray leaving the
// eye. (0, 0) is the top-left corner of a viewportW x viewportH viewport.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, l Lens) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	forward := l.Target.Sub(l.Eye).Normalize()
	right := forward.Cross(l.Up).Normalize()
	up := right.Cross(forward)

	h := math32.Tan(l.FOVY / 2)
	dir := forward.
		Add(right.Scale(ndcX * h * l.Aspect)).
		Add(up.Scale(ndcY * h))

	return Ray{Origin: l.Eye, Direction: dir.Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectBox clips the ray against an axis-aligned box. It returns the
// entry and exit distances; near is 0 when the ray starts inside.
func (r Ray) IntersectBox(lo, hi math.Vec3) (near, far float32, hit bool) {
	near, far = 0, math32.MaxFloat32

	o, d := r.Origin.Array(), r.Direction.Array()
	l, h := lo.Array(), hi.Array()
	for i := range 3 {
		if d[i] == 0 {
			if o[i] < l[i] || o[i] > h[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (l[i] - o[i]) / d[i]
		t2 := (h[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		near = max(near, t1)
		far = min(far, t2)
		if far < near {
			return 0, 0, false
		}
	}
	return near, far, true
}
