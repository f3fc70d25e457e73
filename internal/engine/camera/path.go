package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// PathCamera glides along an eye path while looking at a point that moves
// along a second path. Both are sampled at the same progress, which swings
// back and forth between 0 and 1.
type PathCamera struct {
	EyePath    *bezier.Path
	TargetPath *bezier.Path
	Period     float32 // seconds per radian of the progress oscillation

	eye, target math.Vec3
}

// NewPathCamera creates a path camera starting at eye looking at target.
// The start values are kept for any path that is empty.
func NewPathCamera(eyePath, targetPath *bezier.Path, period float32, eye, target math.Vec3) *PathCamera {
	return &PathCamera{
		EyePath:    eyePath,
		TargetPath: targetPath,
		Period:     period,
		eye:        eye,
		target:     target,
	}
}

// SetPaths swaps in new paths, for example after the path file is reloaded.
func (c *PathCamera) SetPaths(eyePath, targetPath *bezier.Path) {
	c.EyePath = eyePath
	c.TargetPath = targetPath
}

// Progress maps elapsed seconds to a path fraction in [0, 1].
func (c *PathCamera) Progress(seconds float32) float32 {
	return (math32.Sin(seconds/c.Period) + 1) / 2
}

// Update samples both paths at the progress for the given time.
func (c *PathCamera) Update(seconds float32) {
	t := c.Progress(seconds)
	if c.EyePath != nil {
		c.EyePath.SampleInto(t, &c.eye)
	}
	if c.TargetPath != nil {
		c.TargetPath.SampleInto(t, &c.target)
	}
}

// Eye returns the current camera position.
func (c *PathCamera) Eye() math.Vec3 { return c.eye }

// Target returns the current look-at point.
func (c *PathCamera) Target() math.Vec3 { return c.target }

// Up returns the world up vector.
func (c *PathCamera) Up() math.Vec3 { return worldUp }

// ViewMatrix returns the view matrix for this camera.
func (c *PathCamera) ViewMatrix() math.Mat4 { return ViewMatrix(c) }
