package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/engine/input"
	"github.com/Faultbox/terrain-flyover/internal/logger"
)

// PathState plays the camera path flythrough. Time keeps running while
// other modes are active, so re-entering resumes at the current point of
// the oscillation.
type PathState struct {
	cam   *camera.PathCamera
	clock func() float64
}

// NewPathState creates the flythrough mode. clock returns seconds since
// the viewer started.
func NewPathState(cam *camera.PathCamera, clock func() float64) *PathState {
	return &PathState{cam: cam, clock: clock}
}

// Enter samples the paths so the first frame is already on them.
func (s *PathState) Enter() error {
	s.cam.Update(float32(s.clock()))
	logger.Info("camera mode activated",
		zap.Stringer("mode", camera.ModePath),
		zap.Float32("progress", s.cam.Progress(float32(s.clock()))),
	)
	return nil
}

// Exit is a no-op.
func (s *PathState) Exit() error { return nil }

// Update samples both paths at the current time.
func (s *PathState) Update(float64) error {
	s.cam.Update(float32(s.clock()))
	return nil
}

// HandleInput ignores events.
func (s *PathState) HandleInput(input.Event) error { return nil }

// Mode returns ModePath.
func (s *PathState) Mode() camera.Mode { return camera.ModePath }

// View returns the path camera.
func (s *PathState) View() camera.View { return s.cam }
