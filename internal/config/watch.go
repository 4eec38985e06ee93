package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the write bursts editors produce on save
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config file whenever it is written or replaced, until ctx
// is cancelled. The directory is watched so atomic renames are seen. Invalid
// files are logged and the previous configuration stays active.
func (m *Manager) Watch(ctx context.Context) error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go m.watchLoop(ctx, w)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	target := filepath.Clean(m.configPath)
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
			} else {
				debounce.Reset(reloadDebounce)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			if err := m.Load(); err != nil {
				slog.Warn("Config: reload failed, keeping previous configuration", "error", err)
				continue
			}
			slog.Info("Config: reloaded", "path", m.configPath)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("Config: watcher error", "error", err)
		}
	}
}
