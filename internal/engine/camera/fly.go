package camera

import "github.com/Faultbox/terrain-flyover/pkg/math"

// Controls is the set of movement keys held during one step.
type Controls struct {
	Forward, Back      bool // W, S
	PitchDown, PitchUp bool // Q, E
	YawLeft, YawRight  bool // A, D
}

// Velocity is the per-step forward speed and pitch/yaw rates of a FlyCamera.
// Positive pitch tilts the nose down and positive yaw turns left.
type Velocity struct {
	Forward, Pitch, Yaw float32
}

// FlyCamera is a free camera with inertia. Each Step accelerates it from the
// held keys, applies friction and moves it along its front vector.
type FlyCamera struct {
	Position math.Vec3
	Front    math.Vec3
	UpDir    math.Vec3
	Velocity Velocity

	SpeedIncrement    float32
	RotationIncrement float32
	Friction          float32
}

// NewFlyCamera creates a camera at pos looking down -Z.
func NewFlyCamera(pos math.Vec3, speedInc, rotInc, friction float32) *FlyCamera {
	c := &FlyCamera{
		SpeedIncrement:    speedInc,
		RotationIncrement: rotInc,
		Friction:          friction,
	}
	c.Reset(pos)
	return c
}

// Reset moves the camera to pos, faces it down -Z and stops it.
func (c *FlyCamera) Reset(pos math.Vec3) {
	c.Position = pos
	c.Front = math.Vec3{X: 0, Y: 0, Z: -1}
	c.UpDir = worldUp
	c.Velocity = Velocity{}
}

// Step advances the camera by one tick. Rotation uses the rates from before
// this tick's input; translation uses the updated forward speed.
func (c *FlyCamera) Step(in Controls) {
	side := c.UpDir.Cross(c.Front)
	pitch := math.QuatFromAxisAngle(side, c.Velocity.Pitch)
	yaw := math.QuatFromAxisAngle(c.UpDir, c.Velocity.Yaw)

	if in.Forward {
		c.Velocity.Forward += c.SpeedIncrement
	}
	if in.Back {
		c.Velocity.Forward -= c.SpeedIncrement
	}
	if in.PitchDown {
		c.Velocity.Pitch += c.RotationIncrement
	}
	if in.PitchUp {
		c.Velocity.Pitch -= c.RotationIncrement
	}
	if in.YawLeft {
		c.Velocity.Yaw += c.RotationIncrement
	}
	if in.YawRight {
		c.Velocity.Yaw -= c.RotationIncrement
	}

	c.Velocity.Forward -= c.Velocity.Forward * c.Friction
	c.Velocity.Pitch -= c.Velocity.Pitch * c.Friction
	c.Velocity.Yaw -= c.Velocity.Yaw * c.Friction

	c.Position = c.Position.Add(c.Front.Scale(c.Velocity.Forward))
	c.Front = pitch.Rotate(c.Front)
	c.UpDir = pitch.Rotate(c.UpDir)
	c.Front = yaw.Rotate(c.Front)
}

// HeightSampler reports terrain height under a world position.
type HeightSampler interface {
	HeightAtWorld(wx, wz, offset float32) float32
}

// Walk snaps the camera height to the terrain plus offset.
func (c *FlyCamera) Walk(h HeightSampler, offset float32) {
	c.Position.Y = h.HeightAtWorld(c.Position.X, c.Position.Z, offset)
}

// Eye returns the camera position.
func (c *FlyCamera) Eye() math.Vec3 { return c.Position }

// Target returns the point one unit ahead of the camera.
func (c *FlyCamera) Target() math.Vec3 { return c.Position.Add(c.Front) }

// Up returns the camera up vector.
func (c *FlyCamera) Up() math.Vec3 { return c.UpDir }

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 { return ViewMatrix(c) }
