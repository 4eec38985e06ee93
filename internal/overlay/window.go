// Package overlay presents the input state in a small desktop window.
package overlay

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"inputviewer/internal/activewin"
	"inputviewer/internal/tracker"
)

// Options configures the overlay window
type Options struct {
	Title       string
	Size        fyne.Size
	SizeLock    SizeLockConfig
	AlwaysOnTop bool
	LockSize    bool
}

// Window is the fyne overlay. Every method must be called on the UI thread.
type Window struct {
	win fyne.Window

	keys     binding.String
	buttons  binding.String
	position binding.String
	active   binding.String

	keysLabel    *widget.Label
	buttonsLabel *widget.Label

	topmostCheck *widget.Check
	lockCheck    *widget.Check

	topmost  *Topmost
	sizeLock *SizeLock

	onToggle func(alwaysOnTop, lockSize bool)
}

// New builds the overlay window. The toggles take effect once Apply is
// called after the window is shown.
func New(app fyne.App, opts Options) *Window {
	if opts.Title == "" {
		opts.Title = "Input Viewer"
	}

	w := &Window{
		win:      app.NewWindow(opts.Title),
		keys:     binding.NewString(),
		buttons:  binding.NewString(),
		position: binding.NewString(),
		active:   binding.NewString(),
	}

	w.keysLabel = widget.NewLabelWithData(w.keys)
	w.keysLabel.Wrapping = fyne.TextWrapWord
	w.buttonsLabel = widget.NewLabelWithData(w.buttons)
	positionLabel := widget.NewLabelWithData(w.position)
	activeLabel := widget.NewLabelWithData(w.active)
	activeLabel.Truncation = fyne.TextTruncateEllipsis

	bold := fyne.TextStyle{Bold: true}
	fields := container.New(layout.NewFormLayout(),
		widget.NewLabelWithStyle("Pressed keys", fyne.TextAlignLeading, bold), w.keysLabel,
		widget.NewLabelWithStyle("Mouse buttons", fyne.TextAlignLeading, bold), w.buttonsLabel,
		widget.NewLabelWithStyle("Mouse position", fyne.TextAlignLeading, bold), positionLabel,
		widget.NewLabelWithStyle("Active window", fyne.TextAlignLeading, bold), activeLabel,
	)

	w.topmostCheck = widget.NewCheck("Always on top", nil)
	w.topmostCheck.Checked = opts.AlwaysOnTop
	w.lockCheck = widget.NewCheck("Lock size", nil)
	w.lockCheck.Checked = opts.LockSize
	toggles := container.NewHBox(w.topmostCheck, w.lockCheck)

	// the window has no minimum size of its own, the content's minimum bounds it
	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(opts.SizeLock.UnlockedMinSize)
	w.win.SetContent(container.NewStack(minSize, container.NewBorder(nil, toggles, nil, nil, fields)))
	if opts.Size.Width > 0 && opts.Size.Height > 0 {
		w.win.Resize(opts.Size)
	}

	w.topmost = NewTopmost(w.win)
	w.sizeLock = NewSizeLock(&windowGeometry{win: w.win, min: minSize}, opts.SizeLock)

	w.Render(tracker.State{
		Keys:    tracker.Label{Text: tracker.NoneText, Empty: true},
		Buttons: tracker.Label{Text: tracker.NoneText, Empty: true},
	})
	w.SetActiveWindow(activewin.UnknownWindow)

	w.topmostCheck.OnChanged = func(on bool) {
		w.topmost.Set(on)
		w.notifyToggle()
	}
	w.lockCheck.OnChanged = func(on bool) {
		w.sizeLock.Set(on)
		w.notifyToggle()
	}

	return w
}

// Fyne returns the underlying window
func (w *Window) Fyne() fyne.Window {
	return w.win
}

// Show displays the window
func (w *Window) Show() {
	w.win.Show()
}

// Apply pushes the current toggle states to the window. The native handle
// only exists once the window is shown.
func (w *Window) Apply() {
	if w.topmostCheck.Checked {
		w.topmost.Set(true)
	}
	if w.lockCheck.Checked {
		w.sizeLock.Set(true)
	}
}

// Render updates the keys, buttons and position labels
func (w *Window) Render(s tracker.State) {
	setLabel(w.keysLabel, w.keys, s.Keys)
	setLabel(w.buttonsLabel, w.buttons, s.Buttons)
	w.set(w.position, tracker.FormatPosition(s.Cursor))
}

// SetActiveWindow updates the active window label
func (w *Window) SetActiveWindow(title string) {
	w.set(w.active, title)
}

// AlwaysOnTop reports the state of the "Always on top" toggle
func (w *Window) AlwaysOnTop() bool {
	return w.topmostCheck.Checked
}

// LockSize reports the state of the "Lock size" toggle
func (w *Window) LockSize() bool {
	return w.lockCheck.Checked
}

// SetAlwaysOnTop flips the "Always on top" toggle as if clicked
func (w *Window) SetAlwaysOnTop(on bool) {
	w.topmostCheck.SetChecked(on)
}

// SetLockSize flips the "Lock size" toggle as if clicked
func (w *Window) SetLockSize(on bool) {
	w.lockCheck.SetChecked(on)
}

// OnToggle registers fn to be told about toggle changes, e.g. to sync a tray menu
func (w *Window) OnToggle(fn func(alwaysOnTop, lockSize bool)) {
	w.onToggle = fn
}

// OnClosed registers the teardown hook run when the window closes
func (w *Window) OnClosed(fn func()) {
	w.win.SetOnClosed(fn)
}

func (w *Window) notifyToggle() {
	if w.onToggle != nil {
		w.onToggle(w.topmostCheck.Checked, w.lockCheck.Checked)
	}
}

func (w *Window) set(b binding.String, text string) {
	if err := b.Set(text); err != nil {
		slog.Debug("Overlay: binding update failed", "error", err)
	}
}

func setLabel(l *widget.Label, b binding.String, label tracker.Label) {
	importance := widget.MediumImportance
	if label.Empty {
		importance = widget.LowImportance
	}
	if l.Importance != importance || l.TextStyle.Italic != label.Empty {
		l.Importance = importance
		l.TextStyle.Italic = label.Empty
		l.Refresh()
	}
	if err := b.Set(label.Text); err != nil {
		slog.Debug("Overlay: binding update failed", "error", err)
	}
}

// windowGeometry adapts a fyne window to Geometry. The minimum size is held
// by a transparent rectangle stacked under the content.
type windowGeometry struct {
	win fyne.Window
	min *canvas.Rectangle
}

func (g *windowGeometry) Size() fyne.Size {
	return g.win.Canvas().Size()
}

func (g *windowGeometry) Resize(s fyne.Size) {
	g.win.Resize(s)
}

func (g *windowGeometry) Resizable() bool {
	return !g.win.FixedSize()
}

func (g *windowGeometry) SetResizable(on bool) {
	g.win.SetFixedSize(!on)
}

func (g *windowGeometry) SetMinSize(s fyne.Size) {
	g.min.SetMinSize(s)
	if content := g.win.Content(); content != nil {
		content.Refresh()
	}
}
