package states

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/engine/input"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// orbitPanSpeed scales WASD panning per second.
const orbitPanSpeed = 60

// OrbitState is the overview mode: drag to rotate, wheel to zoom, WASD to pan.
type OrbitState struct {
	cam  *camera.OrbitCamera
	keys PointerState

	lo, hi math.Vec3
}

// NewOrbitState creates the overview mode framing the box [lo, hi].
func NewOrbitState(cam *camera.OrbitCamera, keys PointerState, lo, hi math.Vec3) *OrbitState {
	return &OrbitState{cam: cam, keys: keys, lo: lo, hi: hi}
}

// Enter frames the terrain.
func (s *OrbitState) Enter() error {
	s.cam.FitToBounds(s.lo, s.hi)
	logger.Info("camera mode activated",
		zap.Stringer("mode", camera.ModeOrbit),
		zap.Float32("distance", s.cam.Distance),
	)
	return nil
}

// Exit is a no-op.
func (s *OrbitState) Exit() error { return nil }

// Update pans with the held keys.
func (s *OrbitState) Update(dt float64) error {
	var forward, right float32
	if s.keys.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if s.keys.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if s.keys.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if s.keys.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if forward != 0 || right != 0 {
		scale := float32(dt) * orbitPanSpeed
		s.cam.HandleMovement(forward*scale, right*scale, 0)
	}
	return nil
}

// HandleInput rotates on left-button drag and zooms on the wheel.
func (s *OrbitState) HandleInput(ev input.Event) error {
	switch ev.Type {
	case input.EventMouseMove:
		if s.keys.IsButtonHeld(sdl.BUTTON_LEFT) {
			s.cam.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
		}
	case input.EventMouseWheel:
		s.cam.HandleZoom(float32(ev.DeltaY))
	}
	return nil
}

// Mode returns ModeOrbit.
func (s *OrbitState) Mode() camera.Mode { return camera.ModeOrbit }

// View returns the orbit camera.
func (s *OrbitState) View() camera.View { return s.cam }
