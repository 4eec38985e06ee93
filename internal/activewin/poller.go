// Package activewin periodically reports the title of the focused window.
package activewin

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"inputviewer/internal/uithread"
	"inputviewer/internal/workerutil"
)

// UnknownWindow is shown when the foreground window has no title or cannot be queried
const UnknownWindow = "Unknown Window"

// DefaultInterval is the poll period used when none is configured
const DefaultInterval = 500 * time.Millisecond

// ErrAlreadyStarted is returned by Start on a running poller
var ErrAlreadyStarted = errors.New("poller already started")

// Querier reads the foreground window title. *osutils.Foreground implements it.
type Querier interface {
	Title() (string, error)
	Close() error
}

// Poller posts a foreground title query to the UI thread on every tick.
// The query itself runs inside the posted function, on the UI thread.
type Poller struct {
	querier    Querier
	dispatcher uithread.Dispatcher
	sink       func(string)

	mu       sync.Mutex
	interval time.Duration
	ticker   *time.Ticker
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	stopped  atomic.Bool
	stopOnce sync.Once
}

// NewPoller creates a poller that hands each title to sink on the UI thread.
// A non-positive interval means DefaultInterval.
func NewPoller(querier Querier, dispatcher uithread.Dispatcher, sink func(string), interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		querier:    querier,
		dispatcher: dispatcher,
		sink:       sink,
		interval:   interval,
	}
}

// Interval returns the current poll period
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Start posts one immediate refresh, then one per interval until ctx is
// cancelled or Stop is called
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticker != nil {
		return ErrAlreadyStarted
	}
	if p.stopped.Load() {
		return nil
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.ticker = time.NewTicker(p.interval)
	ticks := p.ticker.C

	p.dispatcher.Do(p.Refresh)
	workerutil.RunWithPanicRecovery(ctx, "activewin", &p.wg, func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
				p.dispatcher.Do(p.Refresh)
			}
		}
	}, workerutil.RecoveryOptions{})

	slog.Debug("ActiveWindow: poller started", "interval", p.interval)
	return nil
}

// SetInterval changes the poll period, taking effect from the next tick
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if d == p.interval {
		return
	}
	p.interval = d
	if p.ticker != nil {
		p.ticker.Reset(d)
	}
	slog.Debug("ActiveWindow: interval changed", "interval", d)
}

// Refresh queries the foreground title and hands it to the sink.
// It must run on the UI thread. After Stop it does nothing.
func (p *Poller) Refresh() {
	if p.stopped.Load() {
		return
	}
	title, err := p.querier.Title()
	if err != nil {
		slog.Debug("ActiveWindow: query failed", "error", err)
		title = ""
	}
	if title == "" {
		title = UnknownWindow
	}
	if p.sink != nil {
		p.sink(title)
	}
}

// Stop halts the ticker and releases the querier. Safe to call more than once.
func (p *Poller) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		p.stopped.Store(true)

		p.mu.Lock()
		cancel := p.cancel
		ticker := p.ticker
		p.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		p.wg.Wait()
		if ticker != nil {
			ticker.Stop()
		}
		err = p.querier.Close()
		slog.Debug("ActiveWindow: poller stopped")
	})
	return err
}
