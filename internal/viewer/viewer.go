// Package viewer wires the input hook, the input-state tracker and the active
// window poller to a presenter, and owns their shared teardown.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"inputviewer/internal/activewin"
	"inputviewer/internal/hotkey"
	"inputviewer/internal/input"
	"inputviewer/internal/tracker"
	"inputviewer/internal/uithread"
	"inputviewer/internal/workerutil"
)

// Presenter draws the state. All calls arrive on the UI thread.
type Presenter interface {
	Render(tracker.State)
	SetActiveWindow(title string)
}

// Options configures a Controller
type Options struct {
	Source       input.Source
	Dispatcher   uithread.Dispatcher
	Querier      activewin.Querier
	Presenter    Presenter
	PollInterval time.Duration

	// Hotkeys is optional and sees the same normalized stream as the tracker
	Hotkeys *hotkey.Manager
}

// Controller owns the tracker, relay and poller
type Controller struct {
	source     input.Source
	dispatcher uithread.Dispatcher
	presenter  Presenter

	tracker *tracker.Tracker
	relay   *input.Relay
	poller  *activewin.Poller

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// New creates a controller. Querier may be nil when no foreground query is
// available, in which case the active window label is left as is.
func New(opts Options) *Controller {
	c := &Controller{
		source:     opts.Source,
		dispatcher: opts.Dispatcher,
		presenter:  opts.Presenter,
	}
	c.tracker = tracker.New(c.presenter.Render)
	var target input.Handler = c.tracker
	if opts.Hotkeys != nil {
		target = &hotkeyHandler{Tracker: c.tracker, hotkeys: opts.Hotkeys}
	}
	c.relay = input.NewRelay(c.source, c.dispatcher, target)
	if opts.Querier != nil {
		c.poller = activewin.NewPoller(opts.Querier, c.dispatcher, c.presenter.SetActiveWindow, opts.PollInterval)
	}
	return c
}

// Tracker returns the tracker. Only use it on the UI thread.
func (c *Controller) Tracker() *tracker.Tracker {
	return c.tracker
}

// Start starts the hook source, the relay and the poller. A source that
// fails to start is a fatal startup error.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.source.Start(); err != nil {
		return fmt.Errorf("start input hook: %w", err)
	}
	slog.Info("Hook: started")

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	workerutil.RunWithPanicRecovery(ctx, "relay", &c.wg, c.relay.Run, workerutil.RecoveryOptions{})

	if c.poller != nil {
		if err := c.poller.Start(ctx); err != nil {
			return fmt.Errorf("start active window poller: %w", err)
		}
	}
	return nil
}

// SetPollInterval changes the active window poll period
func (c *Controller) SetPollInterval(d time.Duration) {
	if c.poller != nil {
		c.poller.SetInterval(d)
	}
}

// Close stops the hook, then the poller, then the relay. It is the single
// teardown point and is safe to call more than once and from any goroutine.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		var errs []error
		if err := c.source.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop input hook: %w", err))
		}
		if c.poller != nil {
			if err := c.poller.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop active window poller: %w", err))
			}
		}
		c.mu.Lock()
		cancel := c.cancel
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		c.wg.Wait()

		c.closeErr = errors.Join(errs...)
		slog.Info("Hook: stopped", "dropped", c.relay.Dropped())
	})
	return c.closeErr
}

// hotkeyHandler feeds key and button changes to the hotkey matcher after the tracker
type hotkeyHandler struct {
	*tracker.Tracker
	hotkeys *hotkey.Manager
}

func (h *hotkeyHandler) OnKeyDown(keyID string) {
	h.Tracker.OnKeyDown(keyID)
	h.hotkeys.UpdateState(keyID, true)
}

func (h *hotkeyHandler) OnKeyUp(keyID string) {
	h.Tracker.OnKeyUp(keyID)
	h.hotkeys.UpdateState(keyID, false)
}

func (h *hotkeyHandler) OnButtonDown(buttonID string) {
	h.Tracker.OnButtonDown(buttonID)
	h.hotkeys.UpdateButton(buttonID, true)
}

func (h *hotkeyHandler) OnButtonUp(buttonID string) {
	h.Tracker.OnButtonUp(buttonID)
	h.hotkeys.UpdateButton(buttonID, false)
}
