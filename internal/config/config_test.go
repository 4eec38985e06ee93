package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig tests that default configuration is correct
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Title != "Input Viewer" {
		t.Errorf("Expected title 'Input Viewer', got '%s'", cfg.Window.Title)
	}
	if cfg.Window.LockedWidth != 250 || cfg.Window.LockedHeight != 200 {
		t.Errorf("Expected locked size 250x200, got %dx%d", cfg.Window.LockedWidth, cfg.Window.LockedHeight)
	}
	if cfg.Window.LockedMinWidth != 200 || cfg.Window.LockedMinHeight != 150 {
		t.Errorf("Expected locked min size 200x150, got %dx%d", cfg.Window.LockedMinWidth, cfg.Window.LockedMinHeight)
	}
	if cfg.Window.MinWidth != 100 || cfg.Window.MinHeight != 100 {
		t.Errorf("Expected min size 100x100, got %dx%d", cfg.Window.MinWidth, cfg.Window.MinHeight)
	}
	if cfg.Window.AlwaysOnTop || cfg.Window.LockSize {
		t.Error("Expected both toggles off by default")
	}
	if cfg.Poll.Interval != 500*time.Millisecond {
		t.Errorf("Expected poll interval 500ms, got %s", cfg.Poll.Interval)
	}
	if cfg.Hook.Backend != BackendGohook {
		t.Errorf("Expected backend '%s', got '%s'", BackendGohook, cfg.Hook.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

// TestLoadMissingFile tests that a missing file keeps the defaults
func TestLoadMissingFile(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Expected missing file to load defaults, got %v", err)
	}
	if got := m.Get(); got.Poll.Interval != 500*time.Millisecond {
		t.Errorf("Expected default interval, got %s", got.Poll.Interval)
	}
}

// TestLoadPartialFile tests that zero fields are filled with defaults
func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "window:\n  always_on_top: true\n  width: 640\npoll:\n  interval: 2s\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, _ := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := m.Get()
	if !cfg.Window.AlwaysOnTop {
		t.Error("Expected always_on_top true")
	}
	if cfg.Window.Width != 640 {
		t.Errorf("Expected width 640, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 320 {
		t.Errorf("Expected default height 320, got %d", cfg.Window.Height)
	}
	if cfg.Poll.Interval != 2*time.Second {
		t.Errorf("Expected interval 2s, got %s", cfg.Poll.Interval)
	}
	if cfg.Hook.Backend != BackendGohook {
		t.Errorf("Expected default backend, got '%s'", cfg.Hook.Backend)
	}
}

// TestSaveAndLoad tests a round trip through the file
func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	m, _ := NewManager(path)

	cfg := m.Get()
	cfg.Window.LockSize = true
	cfg.Hook.Backend = BackendNative
	m.Set(cfg)
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	other, _ := NewManager(path)
	if err := other.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := other.Get()
	if !got.Window.LockSize {
		t.Error("Expected lock_size to survive a save")
	}
	if got.Hook.Backend != BackendNative {
		t.Errorf("Expected backend '%s', got '%s'", BackendNative, got.Hook.Backend)
	}
}

// TestValidate tests that every invalid field is reported
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = -1
	cfg.Poll.Interval = -time.Second
	cfg.Hook.Backend = "xinput"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"window.width", "poll.interval", "hook.backend", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %s, got %v", want, err)
		}
	}
}

// TestLoadInvalidFile tests that an invalid file is rejected and the previous config kept
func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hook:\n  backend: xinput\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, _ := NewManager(path)
	if err := m.Load(); err == nil {
		t.Fatal("Expected error for unknown backend")
	}
	if got := m.Get(); got.Hook.Backend != BackendGohook {
		t.Errorf("Expected previous backend to remain, got '%s'", got.Hook.Backend)
	}
}

// TestParseLevel tests log level names
func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%s) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%s): expected %v, got %v", in, want, got)
		}
	}
}

// TestChangeCallback tests that Set and Load notify the registered callback
func TestChangeCallback(t *testing.T) {
	m, _ := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	calls := 0
	m.RegisterChangeCallback(func(*Config) { calls++ })

	m.Set(m.Get())
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 callbacks, got %d", calls)
	}
}

// TestWatchReload tests that editing the file triggers a reload
func TestWatchReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, _ := NewManager(path)
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan time.Duration, 4)
	m.RegisterChangeCallback(func(c *Config) { reloaded <- c.Poll.Interval })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.Watch(ctx); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("poll:\n  interval: 1s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-reloaded:
			if got == time.Second {
				return
			}
		case <-deadline:
			t.Fatal("Timed out waiting for config reload")
		}
	}
}

// TestNewManagerDefaultPath tests the per-user default location
func TestNewManagerDefaultPath(t *testing.T) {
	m, err := NewManager("")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(m.Path()) != "config.yaml" {
		t.Errorf("Expected config.yaml, got %s", m.Path())
	}
	if filepath.Base(filepath.Dir(m.Path())) != "inputviewer" {
		t.Errorf("Expected inputviewer directory, got %s", m.Path())
	}
}
