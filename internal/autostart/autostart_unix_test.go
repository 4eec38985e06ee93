//go:build !windows

package autostart

import (
	"os"
	"strings"
	"testing"
)

func TestEnableDisable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	userHomeDir = func() (string, error) { return home, nil }
	executable = func() (string, error) { return "/opt/inputviewer/inputviewer", nil }
	t.Cleanup(func() {
		userHomeDir = os.UserHomeDir
		executable = os.Executable
	})

	if IsEnabled() {
		t.Fatal("Expected auto-start disabled in a fresh home")
	}
	if err := Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !IsEnabled() {
		t.Error("Expected auto-start enabled")
	}

	path, _, err := entry()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, home) {
		t.Errorf("Expected entry under %s, got %s", home, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "/opt/inputviewer/inputviewer") {
		t.Errorf("Expected executable path in entry, got %s", data)
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if IsEnabled() {
		t.Error("Expected auto-start disabled")
	}
	if err := Disable(); err != nil {
		t.Errorf("Expected second Disable to succeed, got %v", err)
	}
}
