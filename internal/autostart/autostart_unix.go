//go:build !windows

package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"text/template"
)

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name=Input Viewer
Comment=Shows held keys, mouse buttons and the focused window
Exec="{{.ExecutablePath}}"
Terminal=false
Categories=Utility;
X-GNOME-Autostart-enabled=true
`

// userHomeDir is a test seam
var userHomeDir = os.UserHomeDir

// entry returns the autostart file path and its template for this platform
func entry() (string, string, error) {
	if runtime.GOOS == "darwin" {
		home, err := userHomeDir()
		if err != nil {
			return "", "", err
		}
		return filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"), macLaunchAgentPlist, nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := userHomeDir()
		if err != nil {
			return "", "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "autostart", "inputviewer.desktop"), xdgDesktopEntry, nil
}

func enable(execPath string) error {
	path, text, err := entry()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmpl, err := template.New("autostart").Parse(text)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct{ Label, ExecutablePath string }{agentLabel, execPath}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func disable() error {
	path, _, err := entry()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func isEnabled() bool {
	path, _, err := entry()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
