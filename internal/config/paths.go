// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// AppDirName is the name of the HammerOverlay directory inside the user config dir.
	AppDirName = "HammerOverlay"

	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"
)

// File names
const (
	SettingsFileName = "settings.json"
	OptionsFileName  = "options.json"
	InstanceFileName = "instance.yaml"
	LockFileName     = "hammeroverlay.lock"
	LogFileName      = "hammeroverlay.log"
)

var (
	dirMu       sync.RWMutex
	dirOverride string
)

// SetDir overrides the data directory. An empty dir restores the default.
func SetDir(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	dirOverride = dir
}

// DefaultDir returns the platform data directory (e.g. ~/.config/HammerOverlay).
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppDirName), nil
}

// Dir returns the data directory, honouring SetDir.
func Dir() (string, error) {
	dirMu.RLock()
	override := dirOverride
	dirMu.RUnlock()
	if override != "" {
		return override, nil
	}
	return DefaultDir()
}

func fileInDir(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// SettingsFile returns the path to settings.json.
func SettingsFile() (string, error) {
	return fileInDir(SettingsFileName)
}

// InstanceFile returns the path to instance.yaml.
func InstanceFile() (string, error) {
	return fileInDir(InstanceFileName)
}

// LockFile returns the path to the single-instance lock file.
func LockFile() (string, error) {
	return fileInDir(LockFileName)
}

// OptionsFile returns the path to options.json. It always lives in the
// default directory because it is read before any override is known.
func OptionsFile() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, OptionsFileName), nil
}

// LogsDir returns the path to the logs directory.
func LogsDir() (string, error) {
	return fileInDir(LogsDirName)
}

// EnsureDir creates the data directory if it doesn't exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
