package overlay

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"

	"inputviewer/internal/osutils"
)

// Topmost maps the "Always on top" switch to the OS topmost attribute of a window
type Topmost struct {
	window fyne.Window
	handle func() (uintptr, bool)
	apply  func(handle uintptr, on bool) error
	on     bool
}

// NewTopmost creates a toggle for window, initially off
func NewTopmost(window fyne.Window) *Topmost {
	return &Topmost{
		window: window,
		handle: func() (uintptr, bool) { return nativeHandle(window) },
		apply:  osutils.SetTopmost,
	}
}

// On reports the last requested state
func (t *Topmost) On() bool {
	return t.on
}

// Set requests the topmost attribute. Failures are logged and leave the window unchanged.
// Must be called on the UI thread.
func (t *Topmost) Set(on bool) {
	t.on = on

	handle, ok := t.handle()
	if !ok {
		slog.Warn("Overlay: always on top unavailable, no native window handle")
		return
	}
	if err := t.apply(handle, on); err != nil {
		slog.Warn("Overlay: failed to change always on top", "on", on, "error", err)
		return
	}
	slog.Debug("Overlay: always on top changed", "on", on)
}

// nativeHandle returns the HWND or X11 window id behind a fyne window
func nativeHandle(w fyne.Window) (uintptr, bool) {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return 0, false
	}
	var handle uintptr
	nw.RunNative(func(ctx any) {
		switch c := ctx.(type) {
		case driver.WindowsWindowContext:
			handle = c.HWND
		case driver.X11WindowContext:
			handle = c.WindowHandle
		}
	})
	return handle, handle != 0
}
