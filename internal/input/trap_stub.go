//go:build !windows

package input

import "sync"

// Stub implementation for non-Windows platforms

// Trap represents a stub native input trap
type Trap struct {
	events   chan Event
	stopOnce sync.Once
}

// NewTrap creates a new stub trap
func NewTrap() *Trap {
	return &Trap{
		events: make(chan Event),
	}
}

// Start always fails; use the gohook backend on this platform
func (t *Trap) Start() error {
	return ErrUnsupported
}

// Stop closes the event channel
func (t *Trap) Stop() error {
	t.stopOnce.Do(func() {
		close(t.events)
	})
	return nil
}

// Events returns the input event channel (stub)
func (t *Trap) Events() <-chan Event {
	return t.events
}

// Dropped is always zero for the stub
func (t *Trap) Dropped() uint64 {
	return 0
}
