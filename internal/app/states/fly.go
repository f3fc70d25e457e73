package states

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/engine/input"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// FixedStep is the fly camera tick length in seconds. Velocities and
// friction are tuned per tick, so motion is frame-rate independent.
const FixedStep = 1.0 / 60.0

// maxSteps bounds the catch-up after a long frame.
const maxSteps = 8

// ControlsFrom reads the WASD/QE movement keys.
func ControlsFrom(keys KeyState) camera.Controls {
	return camera.Controls{
		Forward:   keys.IsKeyHeld(sdl.SCANCODE_W),
		Back:      keys.IsKeyHeld(sdl.SCANCODE_S),
		PitchDown: keys.IsKeyHeld(sdl.SCANCODE_Q),
		PitchUp:   keys.IsKeyHeld(sdl.SCANCODE_E),
		YawLeft:   keys.IsKeyHeld(sdl.SCANCODE_A),
		YawRight:  keys.IsKeyHeld(sdl.SCANCODE_D),
	}
}

// FlyState drives a FlyCamera from the keyboard. In walk mode the camera is
// snapped to the terrain after every tick.
type FlyState struct {
	cam   *camera.FlyCamera
	keys  KeyState
	start math.Vec3
	mode  camera.Mode

	ground camera.HeightSampler
	offset float32

	accum float64
}

// NewFreeState creates the free flight mode.
func NewFreeState(cam *camera.FlyCamera, keys KeyState, start math.Vec3) *FlyState {
	return &FlyState{cam: cam, keys: keys, start: start, mode: camera.ModeFree}
}

// NewWalkState creates the terrain walking mode. The eye stays offset
// above the ground.
func NewWalkState(cam *camera.FlyCamera, keys KeyState, start math.Vec3, ground camera.HeightSampler, offset float32) *FlyState {
	return &FlyState{cam: cam, keys: keys, start: start, mode: camera.ModeWalk, ground: ground, offset: offset}
}

// Enter resets the camera to the start position.
func (s *FlyState) Enter() error {
	s.cam.Reset(s.start)
	s.accum = 0
	s.snap()
	logger.Info("camera mode activated", zap.Stringer("mode", s.mode))
	return nil
}

// Exit is a no-op.
func (s *FlyState) Exit() error { return nil }

// Update runs as many fixed ticks as dt covers.
func (s *FlyState) Update(dt float64) error {
	s.accum += dt
	steps := 0
	for s.accum >= FixedStep {
		s.accum -= FixedStep
		if steps == maxSteps {
			s.accum = 0
			break
		}
		s.cam.Step(ControlsFrom(s.keys))
		s.snap()
		steps++
	}
	return nil
}

func (s *FlyState) snap() {
	if s.mode == camera.ModeWalk && s.ground != nil {
		s.cam.Walk(s.ground, s.offset)
	}
}

// HandleInput ignores events; movement comes from held keys.
func (s *FlyState) HandleInput(input.Event) error { return nil }

// Mode returns ModeFree or ModeWalk.
func (s *FlyState) Mode() camera.Mode { return s.mode }

// View returns the fly camera.
func (s *FlyState) View() camera.View { return s.cam }
