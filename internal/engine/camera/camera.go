// Package camera provides the free-flying, terrain-walking, path-following
// and orbiting cameras of the viewer.
package camera

import (
	"fmt"

	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// View is the eye, target and up triple a camera renders from.
type View interface {
	Eye() math.Vec3
	Target() math.Vec3
	Up() math.Vec3
}

// ViewMatrix returns the look-at matrix of any camera.
func ViewMatrix(v View) math.Mat4 {
	return math.LookAt(v.Eye(), v.Target(), v.Up())
}

// Mode selects how the camera is driven.
type Mode int

const (
	ModeFree Mode = iota
	ModeWalk
	ModePath
	ModeOrbit
)

var modeNames = [...]string{"free", "walk", "path", "orbit"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeFree, fmt.Errorf("unknown camera mode %q", s)
}

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}
