// Package config provides configuration management for the input viewer.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	appDirName     = "inputviewer"
	configFileName = "config.yaml"

	// maxConfigFileBytes rejects files that cannot be a hand-written config
	maxConfigFileBytes int64 = 1 << 20
)

// Hook backend names accepted in hook.backend
const (
	BackendGohook = "gohook"
	BackendNative = "native"
)

// Config represents the application configuration
type Config struct {
	Window  WindowConfig `yaml:"window"`
	Poll    PollConfig   `yaml:"poll"`
	Hook    HookConfig   `yaml:"hook"`
	Hotkeys HotkeyConfig `yaml:"hotkeys"`
	Log     LogConfig    `yaml:"log"`
}

// WindowConfig contains overlay window geometry and toggles
type WindowConfig struct {
	// Title is the overlay window title
	Title string `yaml:"title"`

	// Width and Height are the initial window size
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// MinWidth and MinHeight are restored when the size lock is released
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`

	// LockedWidth and LockedHeight are applied when the size lock is engaged
	LockedWidth  int `yaml:"locked_width"`
	LockedHeight int `yaml:"locked_height"`

	// LockedMinWidth and LockedMinHeight are the minimum size while locked
	LockedMinWidth  int `yaml:"locked_min_width"`
	LockedMinHeight int `yaml:"locked_min_height"`

	// AlwaysOnTop is the initial state of the "Always on top" toggle
	AlwaysOnTop bool `yaml:"always_on_top"`

	// LockSize is the initial state of the "Lock size" toggle
	LockSize bool `yaml:"lock_size"`
}

// PollConfig controls the active window poller
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// HookConfig selects the global input hook backend
type HookConfig struct {
	// Backend is "gohook" (default) or "native" (Windows only)
	Backend string `yaml:"backend"`
}

// HotkeyConfig binds key combinations such as "Ctrl+Alt+T" to the toggles.
// Empty strings leave a toggle without a shortcut.
type HotkeyConfig struct {
	AlwaysOnTop string `yaml:"always_on_top"`
	LockSize    string `yaml:"lock_size"`
}

// LogConfig controls logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:           "Input Viewer",
			Width:           400,
			Height:          320,
			MinWidth:        100,
			MinHeight:       100,
			LockedWidth:     250,
			LockedHeight:    200,
			LockedMinWidth:  200,
			LockedMinHeight: 150,
		},
		Poll: PollConfig{Interval: 500 * time.Millisecond},
		Hook: HookConfig{Backend: BackendGohook},
		Log:  LogConfig{Level: "info"},
	}
}

// applyDefaults fills zero fields from DefaultConfig
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	w := &c.Window
	if strings.TrimSpace(w.Title) == "" {
		w.Title = d.Window.Title
	}
	fillInt(&w.Width, d.Window.Width)
	fillInt(&w.Height, d.Window.Height)
	fillInt(&w.MinWidth, d.Window.MinWidth)
	fillInt(&w.MinHeight, d.Window.MinHeight)
	fillInt(&w.LockedWidth, d.Window.LockedWidth)
	fillInt(&w.LockedHeight, d.Window.LockedHeight)
	fillInt(&w.LockedMinWidth, d.Window.LockedMinWidth)
	fillInt(&w.LockedMinHeight, d.Window.LockedMinHeight)
	if c.Poll.Interval == 0 {
		c.Poll.Interval = d.Poll.Interval
	}
	if c.Hook.Backend == "" {
		c.Hook.Backend = d.Hook.Backend
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func fillInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error
	w := c.Window
	sizes := []struct {
		name string
		v    int
	}{
		{"window.width", w.Width},
		{"window.height", w.Height},
		{"window.min_width", w.MinWidth},
		{"window.min_height", w.MinHeight},
		{"window.locked_width", w.LockedWidth},
		{"window.locked_height", w.LockedHeight},
		{"window.locked_min_width", w.LockedMinWidth},
		{"window.locked_min_height", w.LockedMinHeight},
	}
	for _, s := range sizes {
		if s.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", s.name, s.v))
		}
	}
	if w.LockedMinWidth > w.LockedWidth || w.LockedMinHeight > w.LockedHeight {
		errs = append(errs, fmt.Errorf("locked minimum size %dx%d exceeds locked size %dx%d",
			w.LockedMinWidth, w.LockedMinHeight, w.LockedWidth, w.LockedHeight))
	}
	if c.Poll.Interval < 0 {
		errs = append(errs, fmt.Errorf("poll.interval must not be negative, got %s", c.Poll.Interval))
	}
	switch c.Hook.Backend {
	case BackendGohook, BackendNative:
	default:
		errs = append(errs, fmt.Errorf("hook.backend %q is not one of %s, %s", c.Hook.Backend, BackendGohook, BackendNative))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log.level value to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func(*Config)
}

// NewManager creates a configuration manager for path, or the default
// per-user location when path is empty
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}, nil
}

// DefaultPath returns <user config dir>/inputviewer/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Path returns the file the manager reads and writes
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file keeps the defaults.
func (m *Manager) Load() error {
	cfg, err := readFile(m.configPath)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged(cfg)
	}
	return nil
}

func readFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.Size() > maxConfigFileBytes {
		return nil, fmt.Errorf("config %s is %d bytes, limit is %d", path, info.Size(), maxConfigFileBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to disk, creating the directory if needed
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	slog.Info("Config: saving configuration", "path", m.configPath, "bytes", len(data))
	return os.WriteFile(m.configPath, data, 0o644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration
func (m *Manager) Set(config Config) {
	config.applyDefaults()
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged(&config)
	}
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
