// Package app wires the overlay's components together and exposes the
// command surface the webview UI calls.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hammeroverlay/hammeroverlay/internal/autolaunch"
	"github.com/hammeroverlay/hammeroverlay/internal/config"
	"github.com/hammeroverlay/hammeroverlay/internal/hotkey"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
	"github.com/hammeroverlay/hammeroverlay/internal/notify"
	"github.com/hammeroverlay/hammeroverlay/internal/stats"
	"github.com/hammeroverlay/hammeroverlay/internal/updater"
	"github.com/hammeroverlay/hammeroverlay/internal/watcher"
	"github.com/hammeroverlay/hammeroverlay/internal/window"
)

// SettingsStore persists AppSettings.
type SettingsStore interface {
	Load() *models.AppSettings
	Save(settings *models.AppSettings) error
	Path() string
}

// Hotkeys owns the global hotkey slot.
type Hotkeys interface {
	Apply(preferred string) hotkey.Outcome
	Register(combo string) error
	Outcome() hotkey.Outcome
	Release() error
}

// Updater checks for and installs releases.
type Updater interface {
	Available(ctx context.Context) (bool, error)
	Install(ctx context.Context) (*updater.Result, error)
}

// HotkeyStatus reports the bound combo to the UI.
type HotkeyStatus struct {
	Bound  bool   `json:"bound"`
	Hotkey string `json:"hotkey"`
}

// Deps are the components an App drives. Launcher may be nil when the
// login item cannot be resolved.
type Deps struct {
	Store     SettingsStore
	Hotkeys   Hotkeys
	Presenter *window.Presenter
	Updater   Updater
	Launcher  autolaunch.Launcher
}

// App is bound to the webview; its exported methods are the UI's commands.
type App struct {
	ctx       context.Context
	store     SettingsStore
	hotkeys   Hotkeys
	presenter *window.Presenter
	updater   Updater
	launcher  autolaunch.Launcher

	mu            sync.Mutex
	appliedHotkey string
	watcher       *watcher.Watcher
	stop          chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup

	// OnHotkeyChange is called after every registration attempt.
	OnHotkeyChange func(hotkey.Outcome)
}

// New creates an App.
func New(d Deps) *App {
	return &App{
		ctx:       context.Background(),
		store:     d.Store,
		hotkeys:   d.Hotkeys,
		presenter: d.Presenter,
		updater:   d.Updater,
		launcher:  d.Launcher,
		stop:      make(chan struct{}),
	}
}

// Start runs the startup sequence for a. The window host calls it once
// its event loop is about to run.
func Start(ctx context.Context, a *App) {
	a.startup(ctx)
}

// Stop releases what Start acquired. It waits for background work.
func Stop(ctx context.Context, a *App) {
	a.shutdown(ctx)
}

// startup loads settings, binds the hotkey and starts the settings watcher.
// ctx bounds the update requests made by commands.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	settings := a.store.Load()
	log.Printf("[settings] Loaded settings from %s", a.store.Path())

	a.applyHotkey(settings.GlobalHotkey)

	if settings.AutoStart && a.launcher != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := autolaunch.Set(a.launcher, true); err != nil {
				log.Printf("[autostart] Failed to enable auto-start: %v", err)
				return
			}
			log.Printf("[autostart] Auto-start enabled based on user settings")
		}()
	}

	if err := a.startWatcher(); err != nil {
		log.Printf("[watcher] Settings watcher unavailable: %v", err)
	}
}

// shutdown releases the hotkey and stops background work.
func (a *App) shutdown(ctx context.Context) {
	a.stopOnce.Do(func() { close(a.stop) })

	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if w != nil {
		w.Stop()
	}

	if err := a.hotkeys.Release(); err != nil {
		log.Printf("[hotkey] Failed to release hotkey: %v", err)
	}
	a.wg.Wait()
}

func (a *App) startWatcher() error {
	w, err := watcher.New(a.store.Path())
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}

	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-a.stop:
				return
			case <-w.Events():
				a.settingsChanged()
			}
		}
	}()
	return nil
}

// settingsChanged reacts to an edit of the settings file from outside the UI.
func (a *App) settingsChanged() {
	settings := a.store.Load()

	a.mu.Lock()
	changed := settings.GlobalHotkey != a.appliedHotkey
	a.mu.Unlock()

	if changed {
		log.Printf("[watcher] Hotkey changed on disk to %q", settings.GlobalHotkey)
		a.applyHotkey(settings.GlobalHotkey)
	}
	a.presenter.Emit(window.SignalSettingsChanged, settings)
}

// applyHotkey runs the fallback protocol for preferred.
func (a *App) applyHotkey(preferred string) hotkey.Outcome {
	a.mu.Lock()
	a.appliedHotkey = preferred
	a.mu.Unlock()

	out := a.hotkeys.Apply(preferred)
	a.hotkeyChanged(out)
	return out
}

func (a *App) hotkeyChanged(out hotkey.Outcome) {
	if a.OnHotkeyChange != nil {
		a.OnHotkeyChange(out)
	}
}

// GetSettings returns the stored settings, or the defaults.
func (a *App) GetSettings() *models.AppSettings {
	return a.store.Load()
}

// SaveSettings persists settings, then re-applies the hotkey and the login
// item when they changed. Only the save itself can fail the call.
func (a *App) SaveSettings(settings models.AppSettings) error {
	previous := a.store.Load()
	if err := a.store.Save(&settings); err != nil {
		log.Printf("[settings] Failed to save settings: %v", err)
		return err
	}
	log.Printf("[settings] Settings saved successfully")

	a.mu.Lock()
	hotkeyChanged := settings.GlobalHotkey != a.appliedHotkey
	a.mu.Unlock()
	if hotkeyChanged {
		a.applyHotkey(settings.GlobalHotkey)
	}

	if settings.AutoStart != previous.AutoStart && a.launcher != nil {
		if err := autolaunch.Set(a.launcher, settings.AutoStart); err != nil {
			log.Printf("[autostart] %v", err)
		}
	}
	return nil
}

// CheckForUpdates reports whether a newer release exists.
func (a *App) CheckForUpdates() (bool, error) {
	log.Printf("[update] Checking for updates")
	available, err := a.updater.Available(a.ctx)
	if err != nil {
		log.Printf("[update] Error checking for updates: %v", err)
		return false, fmt.Errorf("failed to check for updates: %w", err)
	}
	if available {
		log.Printf("[update] Update available")
	} else {
		log.Printf("[update] No updates available")
	}
	return available, nil
}

// InstallUpdate downloads and installs the newest release. The new version
// runs after a restart.
func (a *App) InstallUpdate() error {
	result, err := a.updater.Install(a.ctx)
	if errors.Is(err, updater.ErrNoUpdate) {
		log.Printf("[update] No update available to install")
		return err
	}
	if err != nil {
		log.Printf("[update] Error installing update: %v", err)
		return fmt.Errorf("failed to install update: %w", err)
	}

	log.Printf("[update] Update installed successfully")
	notify.UpdateInstalled(result.LatestVersion)
	return nil
}

var errNoLauncher = errors.New("auto-start is not available on this system")

// ToggleAutostart enables or disables launch at login.
func (a *App) ToggleAutostart(enable bool) error {
	if a.launcher == nil {
		return errNoLauncher
	}
	return autolaunch.Set(a.launcher, enable)
}

// IsAutostartEnabled reports whether launch at login is enabled.
func (a *App) IsAutostartEnabled() (bool, error) {
	if a.launcher == nil {
		return false, errNoLauncher
	}
	return a.launcher.IsEnabled(), nil
}

// InitStatsDB prepares the statistics store.
func (a *App) InitStatsDB() error {
	return stats.InitDB()
}

// GetFormatStats returns the per-format usage counters.
func (a *App) GetFormatStats() models.FormatStats {
	return stats.FormatStats()
}

// IncrementFormatUsage records a use of format.
func (a *App) IncrementFormatUsage(format string) {
	stats.IncrementUsage(format)
}

// DebugStoreLocation returns where settings are stored.
func (a *App) DebugStoreLocation() string {
	return fmt.Sprintf("Settings: %s\nKey: %q", a.store.Path(), config.SettingsKey)
}

// RegisterGlobalHotkey binds exactly combo, without fallbacks. On failure
// the previous binding stays active.
func (a *App) RegisterGlobalHotkey(combo string) error {
	err := a.hotkeys.Register(combo)
	if err == nil {
		a.mu.Lock()
		a.appliedHotkey = combo
		a.mu.Unlock()
	}
	a.hotkeyChanged(a.hotkeys.Outcome())
	return err
}

// GetHotkeyStatus reports the currently bound combo.
func (a *App) GetHotkeyStatus() HotkeyStatus {
	out := a.hotkeys.Outcome()
	if !out.Bound {
		return HotkeyStatus{}
	}
	return HotkeyStatus{Bound: true, Hotkey: out.Combo.String()}
}

// HideWindow hides the overlay back to the tray.
func (a *App) HideWindow() {
	a.presenter.Hide()
}
