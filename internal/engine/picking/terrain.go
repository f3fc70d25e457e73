package picking

import "github.com/Faultbox/terrain-flyover/pkg/math"

// HeightField returns the ground height at a world position.
type HeightField interface {
	Bilinear(wx, wz float32) float32
}

const (
	// MarchSteps is the number of even steps taken through the terrain box.
	MarchSteps = 512
	// RefineSteps is the number of bisection steps once the ground is crossed.
	RefineSteps = 16
)

// PickTerrain returns the first point where r meets the height field inside
// the box [lo, hi]. lo.Y and hi.Y should bracket every height.
func PickTerrain(r Ray, field HeightField, lo, hi math.Vec3) (math.Vec3, bool) {
	near, far, hit := r.IntersectBox(lo, hi)
	if !hit {
		return math.Vec3{}, false
	}

	above := func(t float32) bool {
		p := r.At(t)
		return p.Y > field.Bilinear(p.X, p.Z)
	}

	if !above(near) {
		return r.At(near), true
	}

	step := (far - near) / MarchSteps
	prev := near
	for i := 1; i <= MarchSteps; i++ {
		t := near + float32(i)*step
		if above(t) {
			prev = t
			continue
		}
		a, b := prev, t
		for range RefineSteps {
			mid := (a + b) / 2
			if above(mid) {
				a = mid
			} else {
				b = mid
			}
		}
		p := r.At(b)
		p.Y = field.Bilinear(p.X, p.Z)
		return p, true
	}
	return math.Vec3{}, false
}
