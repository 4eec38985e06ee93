// Package uithread relays work from background goroutines onto the single
// goroutine that owns UI state.
package uithread

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher posts fn for execution on the UI thread. Do must be safe to call
// from any goroutine and must not wait for fn to run.
type Dispatcher interface {
	Do(fn func())
}

// Func adapts a plain function such as fyne.Do to a Dispatcher
type Func func(fn func())

// Do calls f(fn)
func (f Func) Do(fn func()) {
	f(fn)
}

// Immediate runs fn inline on the calling goroutine.
// Only use it where the caller already owns the UI state.
type Immediate struct{}

// Do runs fn immediately
func (Immediate) Do(fn func()) {
	fn()
}

// Loop is a goroutine-backed UI thread. Posted functions run one at a time in
// submission order.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop with room for buffer pending functions
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Do queues fn. It blocks only while the queue is full and returns
// without running fn once the loop has stopped.
func (l *Loop) Do(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Run executes queued functions until ctx is cancelled or Stop is called.
// It must be called from exactly one goroutine.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.queue:
			l.exec(fn)
		case <-ctx.Done():
			l.Stop()
			return
		case <-l.done:
			return
		}
	}
}

// Stop ends Run. Functions still queued are discarded. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("UI: recovered panic in dispatched function", "panic", r)
		}
	}()
	fn()
}
