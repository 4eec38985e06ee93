// Package input provides global keyboard and mouse capture backends and the
// relay that hands their events to the UI thread.
package input

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies what an Event reports
type Kind int

const (
	KeyDown Kind = iota + 1
	KeyUp
	ButtonDown
	ButtonUp
	MouseMove
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "key_down"
	case KeyUp:
		return "key_up"
	case ButtonDown:
		return "button_down"
	case ButtonUp:
		return "button_up"
	case MouseMove:
		return "mouse_move"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is an immutable input notification from a hook backend.
// Key is set for key events, Button for button events, X and Y for all mouse events.
type Event struct {
	Kind   Kind
	Key    string
	Button string
	X      int
	Y      int
	When   time.Time
}

// Source is a global input hook. Events are delivered on a background
// goroutine; Stop releases the hook and closes the Events channel.
type Source interface {
	Start() error
	Stop() error
	Events() <-chan Event
}

// Backend names accepted by NewSource
const (
	BackendGohook = "gohook"
	BackendNative = "native"
)

var (
	// ErrUnsupported is returned by backends that cannot run on this platform
	ErrUnsupported = errors.New("input backend not supported on this platform")

	// ErrUnknownBackend is returned by NewSource for an unrecognized name
	ErrUnknownBackend = errors.New("unknown input backend")

	// ErrAlreadyRunning is returned when Start is called twice
	ErrAlreadyRunning = errors.New("input hook already running")
)

// eventBuffer is the capacity of backend event channels
const eventBuffer = 1024

// NewSource creates the named hook backend
func NewSource(backend string) (Source, error) {
	switch backend {
	case "", BackendGohook:
		return NewHookSource(), nil
	case BackendNative:
		return NewTrap(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// ButtonName returns the display name for a 1-based hook button number
func ButtonName(button int) string {
	switch button {
	case 1:
		return "Left"
	case 2:
		return "Right"
	case 3:
		return "Middle"
	}
	return fmt.Sprintf("Button%d", button)
}
