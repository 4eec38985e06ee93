// Package tracker converts a stream of press/release notifications into
// de-duplicated, insertion-ordered display state.
package tracker

import (
	"fmt"
	"strings"
)

// NoneText is shown when a set has no members
const NoneText = "None"

// syntheticPrefix is prepended by the hook key-name table ("VcA", "VcEnter")
const syntheticPrefix = "Vc"

// Label is the rendered form of a pressed set
type Label struct {
	Text string
	// Empty marks the "None" placeholder so presenters can de-emphasize it
	Empty bool
}

// Position is the last known cursor location in screen coordinates
type Position struct {
	X int
	Y int
}

// String formats the position as "(x, y)"
func (p Position) String() string {
	return FormatPosition(p)
}

// State is everything a presenter needs to draw the input panel
type State struct {
	Keys    Label
	Buttons Label
	Cursor  Position
}

// RenderFunc receives the current state after every mutation that changes the display
type RenderFunc func(State)

// Tracker holds the pressed keys, pressed mouse buttons and cursor position.
//
// Tracker is not safe for concurrent use. Every method must be called from the
// single goroutine that owns the UI.
type Tracker struct {
	keys    *PressedSet
	buttons *PressedSet
	cursor  Position
	render  RenderFunc
}

// New creates a tracker that reports changes to render. render may be nil.
func New(render RenderFunc) *Tracker {
	return &Tracker{
		keys:    NewPressedSet(),
		buttons: NewPressedSet(),
		render:  render,
	}
}

// OnKeyDown records a key press. Repeated presses of a held key are ignored.
func (t *Tracker) OnKeyDown(keyID string) {
	if !t.keys.Add(keyID) {
		return
	}
	t.emit()
}

// OnKeyUp records a key release. Releasing a key that is not held is harmless.
func (t *Tracker) OnKeyUp(keyID string) {
	t.keys.Remove(keyID)
	t.emit()
}

// OnButtonDown records a mouse button press
func (t *Tracker) OnButtonDown(buttonID string) {
	if !t.buttons.Add(buttonID) {
		return
	}
	t.emit()
}

// OnButtonUp records a mouse button release
func (t *Tracker) OnButtonUp(buttonID string) {
	t.buttons.Remove(buttonID)
	t.emit()
}

// OnMouseMove overwrites the cursor position and always re-renders,
// even when the coordinates did not change.
func (t *Tracker) OnMouseMove(x, y int) {
	t.cursor = Position{X: x, Y: y}
	t.emit()
}

// Keys returns the held keys in press order
func (t *Tracker) Keys() []string {
	return t.keys.Members()
}

// Buttons returns the held mouse buttons in press order
func (t *Tracker) Buttons() []string {
	return t.buttons.Members()
}

// Cursor returns the last known cursor position
func (t *Tracker) Cursor() Position {
	return t.cursor
}

// State returns the current display state
func (t *Tracker) State() State {
	return State{
		Keys:    RenderLabel(t.keys),
		Buttons: RenderLabel(t.buttons),
		Cursor:  t.cursor,
	}
}

func (t *Tracker) emit() {
	if t.render != nil {
		t.render(t.State())
	}
}

// RenderLabel joins the members of set with ", " in insertion order,
// or returns the "None" placeholder when the set is empty.
func RenderLabel(set *PressedSet) Label {
	if set == nil || set.Len() == 0 {
		return Label{Text: NoneText, Empty: true}
	}
	return Label{Text: strings.Join(set.order, ", ")}
}

// FormatPosition renders a cursor position as "(x, y)"
func FormatPosition(p Position) string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Normalize strips the synthetic "Vc" prefix the key-name table emits, so the
// displayed name and the de-duplication key are the same string.
// A bare "Vc" is left alone.
func Normalize(raw string) string {
	if len(raw) > len(syntheticPrefix) && strings.HasPrefix(raw, syntheticPrefix) {
		return raw[len(syntheticPrefix):]
	}
	return raw
}
