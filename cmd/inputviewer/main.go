// Input Viewer
// A small overlay showing held keys, held mouse buttons, the cursor position
// and the focused window title
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"inputviewer/internal/activewin"
	"inputviewer/internal/autostart"
	"inputviewer/internal/config"
	"inputviewer/internal/hotkey"
	"inputviewer/internal/input"
	"inputviewer/internal/osutils"
	"inputviewer/internal/overlay"
	"inputviewer/internal/singleinstance"
	"inputviewer/internal/tray"
	"inputviewer/internal/uithread"
	"inputviewer/internal/viewer"
)

var (
	version    = "0.1.0"
	showVer    = flag.Bool("version", false, "Show version")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	configPath = flag.String("config", "", "Path to config.yaml (default: user config dir)")
	hookName   = flag.String("hook", "", "Input hook backend: gohook or native (default from config)")
	console    = flag.Bool("console", false, "Print input state to stdout instead of opening a window")
	initConfig = flag.Bool("init-config", false, "Write the default configuration file and exit")
	autoStart  = flag.String("autostart", "", "Start on login: on, off or status")
)

var logLevel = new(slog.LevelVar)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("inputviewer version %s\n", version)
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if *autoStart != "" {
		handleAutostart(*autoStart)
		return
	}

	cfgMgr, err := config.NewManager(*configPath)
	if err != nil {
		fatal("Failed to initialize config", err)
	}

	if *initConfig {
		writeDefaultConfig(cfgMgr)
		return
	}

	if err := cfgMgr.Load(); err != nil {
		slog.Warn("Config: failed to load, using defaults", "error", err)
	}
	cfg := cfgMgr.Get()
	setLogLevel(cfg.Log.Level)

	lock, err := singleinstance.TryLock(singleinstance.DefaultMutexName())
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		slog.Error("Input Viewer is already running in this session")
		os.Exit(1)
	}
	if err != nil {
		slog.Warn("Single instance check failed, continuing", "error", err)
	}
	defer lock.Release()

	if runtime.GOOS == "windows" && !osutils.IsAdmin() {
		slog.Info("Note: input sent to elevated windows is only visible when running as Administrator")
	}

	backend := cfg.Hook.Backend
	if *hookName != "" {
		backend = *hookName
	}
	src, err := input.NewSource(backend)
	if err != nil {
		fatal("Failed to create input hook", err)
	}

	if *console {
		runConsole(cfgMgr, src)
		return
	}
	runWindow(cfgMgr, src)
}

func runWindow(cfgMgr *config.Manager, src input.Source) {
	cfg := cfgMgr.Get()
	wc := cfg.Window

	a := app.NewWithID("io.inputviewer")
	ov := overlay.New(a, overlay.Options{
		Title: wc.Title,
		Size:  fyne.NewSize(float32(wc.Width), float32(wc.Height)),
		SizeLock: overlay.SizeLockConfig{
			LockedSize:      fyne.NewSize(float32(wc.LockedWidth), float32(wc.LockedHeight)),
			LockedMinSize:   fyne.NewSize(float32(wc.LockedMinWidth), float32(wc.LockedMinHeight)),
			UnlockedMinSize: fyne.NewSize(float32(wc.MinWidth), float32(wc.MinHeight)),
		},
		AlwaysOnTop: wc.AlwaysOnTop,
		LockSize:    wc.LockSize,
	})
	ov.Fyne().SetMaster()

	hk := hotkey.NewManager()
	registerHotkey(hk, cfg.Hotkeys.AlwaysOnTop, func() { ov.SetAlwaysOnTop(!ov.AlwaysOnTop()) })
	registerHotkey(hk, cfg.Hotkeys.LockSize, func() { ov.SetLockSize(!ov.LockSize()) })

	ctrl := viewer.New(viewer.Options{
		Source:       src,
		Dispatcher:   uithread.Func(fyne.Do),
		Querier:      newQuerier(),
		Presenter:    ov,
		PollInterval: cfg.Poll.Interval,
		Hotkeys:      hk,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctrl.Start(ctx); err != nil {
		ctrl.Close()
		fatal("Failed to start", err)
	}
	defer ctrl.Close()

	ov.OnClosed(func() { ctrl.Close() })
	a.Lifecycle().SetOnStarted(ov.Apply)
	a.Lifecycle().SetOnStopped(func() { ctrl.Close() })

	t := tray.New(a, wc.Title)
	t.AddMenuItem("Show window", func() {
		ov.Show()
		ov.Fyne().RequestFocus()
	})
	t.AddSeparator()
	topID := t.AddMenuItem("Always on top", func() { ov.SetAlwaysOnTop(!ov.AlwaysOnTop()) })
	lockID := t.AddMenuItem("Lock size", func() { ov.SetLockSize(!ov.LockSize()) })
	if t.Install() {
		t.SetItemChecked(topID, ov.AlwaysOnTop())
		t.SetItemChecked(lockID, ov.LockSize())
	}

	ov.OnToggle(func(alwaysOnTop, lockSize bool) {
		t.SetItemChecked(topID, alwaysOnTop)
		t.SetItemChecked(lockID, lockSize)
		persistToggles(cfgMgr, alwaysOnTop, lockSize)
	})

	watchConfig(ctx, cfgMgr, ctrl)

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		fyne.Do(a.Quit)
	}()

	slog.Info("Input Viewer running", "config", cfgMgr.Path())
	ov.Show()
	a.Run()
}

func runConsole(cfgMgr *config.Manager, src input.Source) {
	cfg := cfgMgr.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := uithread.NewLoop(256)
	ctrl := viewer.New(viewer.Options{
		Source:       src,
		Dispatcher:   loop,
		Querier:      newQuerier(),
		Presenter:    overlay.NewConsole(os.Stdout),
		PollInterval: cfg.Poll.Interval,
	})
	if err := ctrl.Start(ctx); err != nil {
		ctrl.Close()
		fatal("Failed to start", err)
	}
	defer ctrl.Close()

	watchConfig(ctx, cfgMgr, ctrl)

	slog.Info("Input Viewer running in console mode. Press Ctrl+C to stop.")
	loop.Run(ctx)
	slog.Info("Shutting down...")
}

func registerHotkey(hk *hotkey.Manager, combo string, fn func()) {
	if err := hk.Register(combo, fn); err != nil {
		slog.Warn("Hotkey: ignoring invalid shortcut", "hotkey", combo, "error", err)
		return
	}
	if combo != "" {
		slog.Info("Hotkey: registered", "hotkey", combo)
	}
}

// newQuerier returns the foreground window reader, or nil when the platform has none
func newQuerier() activewin.Querier {
	fg, err := osutils.NewForeground()
	if err != nil {
		slog.Warn("Active window title unavailable", "error", err)
		return nil
	}
	return fg
}

// watchConfig applies log level and poll interval changes from the config file
func watchConfig(ctx context.Context, cfgMgr *config.Manager, ctrl *viewer.Controller) {
	cfgMgr.RegisterChangeCallback(func(c *config.Config) {
		setLogLevel(c.Log.Level)
		ctrl.SetPollInterval(c.Poll.Interval)
	})
	if err := cfgMgr.Watch(ctx); err != nil {
		slog.Warn("Config: live reload disabled", "error", err)
	}
}

func persistToggles(cfgMgr *config.Manager, alwaysOnTop, lockSize bool) {
	cfg := cfgMgr.Get()
	if cfg.Window.AlwaysOnTop == alwaysOnTop && cfg.Window.LockSize == lockSize {
		return
	}
	cfg.Window.AlwaysOnTop = alwaysOnTop
	cfg.Window.LockSize = lockSize
	cfgMgr.Set(cfg)
	if err := cfgMgr.Save(); err != nil {
		slog.Warn("Config: failed to save toggles", "error", err)
	}
}

func handleAutostart(mode string) {
	var err error
	switch mode {
	case "on":
		err = autostart.Enable()
	case "off":
		err = autostart.Disable()
	case "status":
	default:
		fatal("Invalid -autostart value", fmt.Errorf("%q is not one of on, off, status", mode))
	}
	if err != nil {
		fatal("Failed to change auto-start", err)
	}
	fmt.Printf("Auto-start enabled: %v\n", autostart.IsEnabled())
}

func writeDefaultConfig(cfgMgr *config.Manager) {
	if _, err := os.Stat(cfgMgr.Path()); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgMgr.Path())
		return
	}
	cfgMgr.Set(*config.DefaultConfig())
	if err := cfgMgr.Save(); err != nil {
		fatal("Failed to write config", err)
	}
	fmt.Printf("Wrote default config to %s\n", cfgMgr.Path())
}

func setLogLevel(name string) {
	level, err := config.ParseLevel(name)
	if err != nil {
		slog.Warn("Config: invalid log level, using info", "error", err)
	}
	if *debug {
		level = slog.LevelDebug
	}
	logLevel.Set(level)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
