package input

import (
	"context"
	"log/slog"

	"inputviewer/internal/tracker"
	"inputviewer/internal/uithread"
)

// Handler receives normalized input on the UI thread. *tracker.Tracker implements it.
type Handler interface {
	OnKeyDown(keyID string)
	OnKeyUp(keyID string)
	OnButtonDown(buttonID string)
	OnButtonUp(buttonID string)
	OnMouseMove(x, y int)
}

// dropCounter is implemented by backends that drop events under load
type dropCounter interface {
	Dropped() uint64
}

// Relay moves events from a Source onto the UI thread.
// It never calls the Handler directly; every call goes through the Dispatcher.
type Relay struct {
	source     Source
	dispatcher uithread.Dispatcher
	target     Handler
}

// NewRelay creates a relay from source to target via dispatcher
func NewRelay(source Source, dispatcher uithread.Dispatcher, target Handler) *Relay {
	return &Relay{
		source:     source,
		dispatcher: dispatcher,
		target:     target,
	}
}

// Run forwards events until the source channel closes or ctx is cancelled
func (r *Relay) Run(ctx context.Context) {
	events := r.source.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				slog.Debug("Relay: source closed", "dropped", r.Dropped())
				return
			}
			r.forward(ev)
		}
	}
}

// Dropped reports events the backend discarded, or zero if it does not count them
func (r *Relay) Dropped() uint64 {
	if dc, ok := r.source.(dropCounter); ok {
		return dc.Dropped()
	}
	return 0
}

// forward normalizes on the calling goroutine and posts only the handler call
func (r *Relay) forward(ev Event) {
	target := r.target
	switch ev.Kind {
	case KeyDown:
		key := tracker.Normalize(ev.Key)
		r.dispatcher.Do(func() { target.OnKeyDown(key) })
	case KeyUp:
		key := tracker.Normalize(ev.Key)
		r.dispatcher.Do(func() { target.OnKeyUp(key) })
	case ButtonDown:
		button := tracker.Normalize(ev.Button)
		r.dispatcher.Do(func() { target.OnButtonDown(button) })
	case ButtonUp:
		button := tracker.Normalize(ev.Button)
		r.dispatcher.Do(func() { target.OnButtonUp(button) })
	case MouseMove:
		x, y := ev.X, ev.Y
		r.dispatcher.Do(func() { target.OnMouseMove(x, y) })
	default:
		slog.Debug("Relay: ignoring event", "kind", ev.Kind)
	}
}
