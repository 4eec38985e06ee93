package input

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	hook "github.com/robotn/gohook"
)

// libuiohook event kinds as numbered by gohook. gohook's constant names do not
// line up with the press/release semantics, so they are spelled out here.
const (
	uioKeyPressed    = hook.KeyHold   // EVENT_KEY_PRESSED
	uioKeyReleased   = hook.KeyUp     // EVENT_KEY_RELEASED
	uioMousePressed  = hook.MouseHold // EVENT_MOUSE_PRESSED
	uioMouseReleased = hook.MouseDown // EVENT_MOUSE_RELEASED
	uioMouseMoved    = hook.MouseMove
	uioMouseDragged  = hook.MouseDrag
)

// HookSource captures global input through libuiohook (github.com/robotn/gohook)
type HookSource struct {
	mu       sync.Mutex
	running  bool
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
	dropped  atomic.Uint64

	// start and end are swapped in tests
	start func() chan hook.Event
	end   func()
}

// NewHookSource creates a libuiohook-backed source
func NewHookSource() *HookSource {
	return &HookSource{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
		start:  hook.Start,
		end:    hook.End,
	}
}

// Start installs the global hook and begins forwarding events
func (s *HookSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true

	raw := s.start()
	slog.Info("Hook: libuiohook started")
	go s.forward(raw)
	return nil
}

// Stop releases the hook and closes the event channel. Safe to call more than once.
func (s *HookSource) Stop() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		wasRunning := s.running
		s.running = false
		s.mu.Unlock()

		close(s.done)
		if wasRunning {
			s.end()
			slog.Info("Hook: libuiohook stopped", "dropped", s.dropped.Load())
		} else {
			close(s.events)
		}
	})
	return nil
}

// Events returns the translated event channel
func (s *HookSource) Events() <-chan Event {
	return s.events
}

// Dropped reports how many events were discarded because the channel was full
func (s *HookSource) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *HookSource) forward(raw chan hook.Event) {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-raw:
			if !ok {
				return
			}
			e, ok := translateHookEvent(ev)
			if !ok {
				continue
			}
			select {
			case s.events <- e:
			case <-s.done:
				return
			default:
				s.dropped.Add(1)
			}
		}
	}
}

// translateHookEvent maps a libuiohook event onto Event. Typed-character,
// click, wheel and hook lifecycle events are not part of the contract.
func translateHookEvent(ev hook.Event) (Event, bool) {
	when := ev.When
	if when.IsZero() {
		when = time.Now()
	}

	switch ev.Kind {
	case uioKeyPressed:
		return Event{Kind: KeyDown, Key: KeyName(ev.Keycode), When: when}, true
	case uioKeyReleased:
		return Event{Kind: KeyUp, Key: KeyName(ev.Keycode), When: when}, true
	case uioMousePressed:
		return Event{Kind: ButtonDown, Button: ButtonName(int(ev.Button)), X: int(ev.X), Y: int(ev.Y), When: when}, true
	case uioMouseReleased:
		return Event{Kind: ButtonUp, Button: ButtonName(int(ev.Button)), X: int(ev.X), Y: int(ev.Y), When: when}, true
	case uioMouseMoved, uioMouseDragged:
		return Event{Kind: MouseMove, X: int(ev.X), Y: int(ev.Y), When: when}, true
	}
	return Event{}, false
}
