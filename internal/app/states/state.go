// Package states implements the camera modes of the viewer as states.
package states

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/engine/input"
)

// KeyState reports held keys. *input.Input implements it.
type KeyState interface {
	IsKeyHeld(scancode sdl.Scancode) bool
}

// PointerState adds mouse buttons to KeyState.
type PointerState interface {
	KeyState
	IsButtonHeld(button uint8) bool
}

// State is one camera mode.
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt float64) error

	// HandleInput processes input events.
	HandleInput(event input.Event) error

	// Mode identifies the camera mode this state drives.
	Mode() camera.Mode

	// View is the camera to render from.
	View() camera.View
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes a pending change and updates the current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// HandleInput forwards an event to the current state.
func (m *Manager) HandleInput(event input.Event) error {
	if m.current != nil {
		return m.current.HandleInput(event)
	}
	return nil
}

// View returns the current camera, or nil before the first Update.
func (m *Manager) View() camera.View {
	if m.current != nil {
		return m.current.View()
	}
	return nil
}
