// Package instance enforces that only one HammerOverlay process runs at a time.
package instance

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/hammeroverlay/hammeroverlay/internal/buildinfo"
	"github.com/hammeroverlay/hammeroverlay/internal/config"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// ErrAlreadyRunning is returned by Acquire when another process holds the lock.
var ErrAlreadyRunning = errors.New("HammerOverlay is already running")

// Guard holds the exclusivity lock for the lifetime of the process.
type Guard struct {
	lock *flock.Flock
	info *models.InstanceInfo
}

// Acquire takes the lock at lockPath. It never waits: if another process
// holds the lock ErrAlreadyRunning is returned. Any other error means the
// lock primitive itself failed.
func Acquire(lockPath string) (*Guard, error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire instance lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}

	return &Guard{lock: lock}, nil
}

// AcquireDefault takes the lock in the data directory and records the
// running instance in instance.yaml.
func AcquireDefault() (*Guard, error) {
	path, err := config.LockFile()
	if err != nil {
		return nil, err
	}

	g, err := Acquire(path)
	if err != nil {
		return nil, err
	}

	g.info = models.NewInstanceInfo(os.Getpid(), uuid.New().String(), buildinfo.Version)
	if err := config.SaveInstanceInfo(g.info); err != nil {
		log.Printf("Failed to write instance info: %v", err)
	}

	log.Printf("Single instance check passed (PID %d, session %s)", g.info.PID, g.info.SessionID)
	return g, nil
}

// Info returns the recorded instance info, or nil for a bare Acquire.
func (g *Guard) Info() *models.InstanceInfo {
	return g.info
}

// Release unlocks and removes instance.yaml. Process exit releases the
// lock as well, so calling Release is optional.
func (g *Guard) Release() error {
	if g.info != nil {
		if err := config.RemoveInstanceInfo(); err != nil {
			log.Printf("Failed to remove instance info: %v", err)
		}
	}
	return g.lock.Unlock()
}

// IsLocked reports whether another process currently holds the lock at lockPath.
func IsLocked(lockPath string) (bool, error) {
	if !config.FileExists(lockPath) {
		return false, nil
	}

	probe := flock.New(lockPath)
	locked, err := probe.TryLock()
	if err != nil {
		return false, err
	}
	if locked {
		_ = probe.Unlock()
		return false, nil
	}
	return true, nil
}

// Status reports whether an instance is running and, if so, its recorded info.
func Status() (bool, *models.InstanceInfo, error) {
	path, err := config.LockFile()
	if err != nil {
		return false, nil, err
	}

	running, err := IsLocked(path)
	if err != nil {
		return false, nil, err
	}
	if !running {
		return false, nil, nil
	}

	info, err := config.LoadInstanceInfo()
	if err != nil {
		return true, nil, nil
	}
	return true, info, nil
}
