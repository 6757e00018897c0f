// Package autolaunch registers the app to start at login.
package autolaunch

import (
	"fmt"
	"log"
	"os"

	"github.com/emersion/go-autostart"
)

// MinimizedFlag is passed to the app when it is launched at login.
const MinimizedFlag = "--minimized"

const (
	appName     = "hammeroverlay"
	displayName = "HammerOverlay"
)

// Launcher is the login-item registration for the app.
type Launcher interface {
	// IsEnabled returns whether launch at login is currently enabled.
	IsEnabled() bool
	// Enable sets up the application to start on login.
	Enable() error
	// Disable removes the login item.
	Disable() error
}

// New returns the login item for the running executable.
func New() (*autostart.App, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return &autostart.App{
		Name:        appName,
		DisplayName: displayName,
		Exec:        []string{exe, MinimizedFlag},
	}, nil
}

// Set enables or disables launch at login. It does nothing when the login
// item is already in the requested state.
func Set(l Launcher, enabled bool) error {
	if l.IsEnabled() == enabled {
		return nil
	}
	if enabled {
		if err := l.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}
		log.Printf("[autostart] Enabled")
		return nil
	}
	if err := l.Disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	log.Printf("[autostart] Disabled")
	return nil
}
