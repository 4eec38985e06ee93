package hotkey

import "testing"

func TestHotkeyMatch(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("Ctrl+Alt+T", func() { fired++ }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m.UpdateState("LeftControl", true)
	m.UpdateState("RightAlt", true)
	if fired != 0 {
		t.Errorf("Expected no trigger before T, got %d", fired)
	}
	m.UpdateState("T", true)
	if fired != 1 {
		t.Errorf("Expected 1 trigger, got %d", fired)
	}

	// auto-repeat of the held key does not fire again
	m.UpdateState("T", true)
	if fired != 1 {
		t.Errorf("Expected repeat to be ignored, got %d", fired)
	}

	m.UpdateState("T", false)
	m.UpdateState("T", true)
	if fired != 2 {
		t.Errorf("Expected second trigger after release, got %d", fired)
	}
}

func TestHotkeyUnrelatedKey(t *testing.T) {
	m := NewManager()
	fired := 0
	m.Register("Shift+Button4", func() { fired++ })

	m.UpdateState("LeftShift", true)
	m.UpdateButton("Button4", true)
	m.UpdateState("A", true)
	if fired != 1 {
		t.Errorf("Expected 1 trigger, got %d", fired)
	}
}

func TestHotkeyRegister(t *testing.T) {
	m := NewManager()
	if err := m.Register("", func() {}); err != nil {
		t.Errorf("Expected empty hotkey to be ignored, got %v", err)
	}
	if err := m.Register("Ctrl++T", func() {}); err == nil {
		t.Error("Expected error for empty part")
	}
	if m.Len() != 0 {
		t.Errorf("Expected 0 hotkeys, got %d", m.Len())
	}
	m.Register("F9", func() {})
	if m.Len() != 1 {
		t.Errorf("Expected 1 hotkey, got %d", m.Len())
	}
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Expected 0 hotkeys after Clear, got %d", m.Len())
	}
}

func TestHotkeyButtonsAndKeysAreDistinct(t *testing.T) {
	m := NewManager()
	arrow, click := 0, 0
	m.Register("Ctrl+Left", func() { arrow++ })
	m.Register("Ctrl+MouseLeft", func() { click++ })

	// holding the left button is not the Left arrow key
	m.UpdateButton("Left", true)
	m.UpdateState("LeftControl", true)
	if arrow != 0 {
		t.Errorf("Expected arrow combo not fired by mouse button, got %d", arrow)
	}
	if click != 1 {
		t.Errorf("Expected mouse combo fired once, got %d", click)
	}

	m.UpdateButton("Left", false)
	m.UpdateState("Left", true)
	if arrow != 1 {
		t.Errorf("Expected arrow combo fired once, got %d", arrow)
	}
	if click != 1 {
		t.Errorf("Expected mouse combo not fired by arrow key, got %d", click)
	}
}

func TestHotkeyButtonNames(t *testing.T) {
	tests := []struct {
		combo  string
		button string
	}{
		{"Shift+MouseRight", "Right"},
		{"Shift+mousemiddle", "Middle"},
		{"Shift+Mouse4", "Button4"},
		{"Shift+Button5", "Button5"},
	}
	for _, tt := range tests {
		m := NewManager()
		fired := 0
		if err := m.Register(tt.combo, func() { fired++ }); err != nil {
			t.Fatalf("Register(%s) failed: %v", tt.combo, err)
		}
		m.UpdateState("RightShift", true)
		m.UpdateButton(tt.button, true)
		if fired != 1 {
			t.Errorf("%s: expected 1 trigger for button %s, got %d", tt.combo, tt.button, fired)
		}
	}
}
