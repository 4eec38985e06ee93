// Package autostart registers the overlay to start on login.
package autostart

import (
	"fmt"
	"os"
)

const (
	appName    = "InputViewer"
	agentLabel = "io.inputviewer.agent"
)

// executable is a test seam
var executable = os.Executable

// Enable enables auto-start on login for the running executable
func Enable() error {
	execPath, err := executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	return enable(execPath)
}

// Disable disables auto-start on login. Disabling twice is not an error.
func Disable() error {
	return disable()
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	return isEnabled()
}
