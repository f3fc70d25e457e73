package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framing the [-1, 1] terrain square.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        3.0,
		RotationX:       0.6,
		MinDistance:     0.5,
		MaxDistance:     20.0,
		MinPitch:        -1.2,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	sx, cx := math32.Sin(c.RotationX), math32.Cos(c.RotationX)
	sy, cy := math32.Sin(c.RotationY), math32.Cos(c.RotationY)
	return c.Center.Add(math.Vec3{X: cx * sy, Y: sx, Z: cx * cy}.Scale(c.Distance))
}

// Target returns the orbit center.
func (c *OrbitCamera) Target() math.Vec3 { return c.Center }

// Up returns the world up vector.
func (c *OrbitCamera) Up() math.Vec3 { return worldUp }

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 { return ViewMatrix(c) }

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center on the XZ plane relative to the view
// direction, scaled by distance.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01
	sy, cy := math32.Sin(c.RotationY), math32.Cos(c.RotationY)

	c.Center.X += (-sy*forward + cy*right) * speed
	c.Center.Z += (-cy*forward - sy*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on a box and backs off to frame it.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Midpoint(hi)
	size := max(hi.X-lo.X, hi.Z-lo.Z)
	c.Distance = clamp(size*1.5, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6
	c.RotationY = 0
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
