// Package hotkey matches key and mouse button combinations against the
// normalized input stream.
package hotkey

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// buttonPrefix keeps mouse buttons apart from keys of the same name,
// such as the Left arrow and the left button.
const buttonPrefix = "MOUSE:"

// aliases expand modifier shorthands to the side-specific key names
var aliases = map[string][]string{
	"CTRL":    {"LEFTCONTROL", "RIGHTCONTROL"},
	"CONTROL": {"LEFTCONTROL", "RIGHTCONTROL"},
	"ALT":     {"LEFTALT", "RIGHTALT"},
	"SHIFT":   {"LEFTSHIFT", "RIGHTSHIFT"},
	"WIN":     {"LEFTMETA", "RIGHTMETA"},
	"META":    {"LEFTMETA", "RIGHTMETA"},
	"CMD":     {"LEFTMETA", "RIGHTMETA"},
}

// Manager handles hotkey registration and matching.
// It is fed from the UI thread and runs callbacks there; it is not safe for concurrent use.
type Manager struct {
	hotkeys      []*registeredHotkey
	currentState map[string]bool // keys/buttons currently pressed, upper case
}

type registeredHotkey struct {
	parts    [][]string // each part is satisfied by any of its names
	original string
	callback func()
}

// NewManager creates a new hotkey manager
func NewManager() *Manager {
	return &Manager{
		currentState: make(map[string]bool),
	}
}

// Register registers a hotkey string such as "Ctrl+Alt+T" or "Ctrl+MouseLeft".
// Key names are the ones shown in the overlay, compared case-insensitively.
// Mouse buttons are written MouseLeft, MouseRight, MouseMiddle or MouseN
// (ButtonN is accepted too). An empty string registers nothing.
func (m *Manager) Register(hotkeyStr string, callback func()) error {
	if strings.TrimSpace(hotkeyStr) == "" {
		return nil
	}

	var parts [][]string
	for _, p := range strings.Split(strings.ToUpper(hotkeyStr), "+") {
		p = strings.TrimSpace(p)
		if p == "" {
			return fmt.Errorf("hotkey %q has an empty part", hotkeyStr)
		}
		if names, ok := aliases[p]; ok {
			parts = append(parts, names)
		} else if button, ok := buttonPart(p); ok {
			parts = append(parts, []string{buttonPrefix + button})
		} else {
			parts = append(parts, []string{p})
		}
	}

	m.hotkeys = append(m.hotkeys, &registeredHotkey{
		parts:    parts,
		original: hotkeyStr,
		callback: callback,
	})
	return nil
}

// Clear removes all registered hotkeys
func (m *Manager) Clear() {
	m.hotkeys = nil
}

// Len returns the number of registered hotkeys
func (m *Manager) Len() int {
	return len(m.hotkeys)
}

// buttonPart maps MouseLeft, Mouse4 or Button4 to the overlay button name
func buttonPart(p string) (string, bool) {
	if strings.HasPrefix(p, "BUTTON") && isDigits(p[len("BUTTON"):]) {
		return p, true
	}
	rest, ok := strings.CutPrefix(p, "MOUSE")
	if !ok || rest == "" {
		return "", false
	}
	if isDigits(rest) {
		return "BUTTON" + rest, true
	}
	return rest, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// UpdateState records a key change. A press that completes a
// combination fires its callback; repeats of a held key do not.
func (m *Manager) UpdateState(key string, isDown bool) {
	m.update(strings.ToUpper(key), isDown)
}

// UpdateButton records a mouse button change, named as in the overlay (Left, Button4)
func (m *Manager) UpdateButton(button string, isDown bool) {
	m.update(buttonPrefix+strings.ToUpper(button), isDown)
}

func (m *Manager) update(key string, isDown bool) {
	if !isDown {
		delete(m.currentState, key)
		return
	}
	if m.currentState[key] {
		return
	}
	m.currentState[key] = true
	m.checkMatches(key)
}

func (m *Manager) checkMatches(trigger string) {
	for _, hk := range m.hotkeys {
		if hk.involves(trigger) && hk.satisfied(m.currentState) {
			slog.Debug("Hotkey: triggered", "hotkey", hk.original)
			hk.callback()
		}
	}
}

func (hk *registeredHotkey) involves(key string) bool {
	for _, names := range hk.parts {
		for _, n := range names {
			if n == key {
				return true
			}
		}
	}
	return false
}

func (hk *registeredHotkey) satisfied(state map[string]bool) bool {
	for _, names := range hk.parts {
		found := false
		for _, n := range names {
			if state[n] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
