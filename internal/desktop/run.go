// Package desktop hosts the overlay in a Wails webview with a system tray.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	hammeroverlay "github.com/hammeroverlay/hammeroverlay"
	"github.com/hammeroverlay/hammeroverlay/internal/app"
	"github.com/hammeroverlay/hammeroverlay/internal/autolaunch"
	"github.com/hammeroverlay/hammeroverlay/internal/buildinfo"
	"github.com/hammeroverlay/hammeroverlay/internal/config"
	"github.com/hammeroverlay/hammeroverlay/internal/hotkey"
	"github.com/hammeroverlay/hammeroverlay/internal/instance"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
	"github.com/hammeroverlay/hammeroverlay/internal/notify"
	"github.com/hammeroverlay/hammeroverlay/internal/tray"
	"github.com/hammeroverlay/hammeroverlay/internal/updater"
	"github.com/hammeroverlay/hammeroverlay/internal/window"
)

// Flags are the command-line switches of the main command.
type Flags struct {
	// Minimized is set when launched at login. The window starts hidden
	// either way; the flag is accepted for the login item.
	Minimized bool
	// Show reveals the window once startup completes.
	Show bool
}

// Run starts the overlay and blocks until it quits. It returns
// instance.ErrAlreadyRunning when another instance holds the lock.
func Run(opts *models.Options, flags Flags) error {
	log.Printf("HammerOverlay starting up (version %s)", buildinfo.Version)

	guard, err := instance.AcquireDefault()
	if errors.Is(err, instance.ErrAlreadyRunning) {
		log.Printf("Another instance of HammerOverlay is already running")
		notify.AlreadyRunning()
		return err
	}
	if err != nil {
		return fmt.Errorf("single instance check: %w", err)
	}
	defer func() {
		if err := guard.Release(); err != nil {
			log.Printf("Failed to release instance lock: %v", err)
		}
	}()

	store, err := config.OpenStore()
	if err != nil {
		return err
	}

	presenter := window.NewPresenter(nil)
	registrar := hotkey.NewRegistrar(hotkey.NewNativeBinder(), nil, presenter.Reveal)
	checker := updater.NewChecker(opts.ReleasesURL, time.Duration(opts.UpdateTimeout)*time.Second)

	var launcher autolaunch.Launcher
	if l, err := autolaunch.New(); err != nil {
		log.Printf("[autostart] Launch at login unavailable: %v", err)
	} else {
		launcher = l
	}

	a := app.New(app.Deps{
		Store:     store,
		Hotkeys:   registrar,
		Presenter: presenter,
		Updater:   checker,
		Launcher:  launcher,
	})
	lc := &lifecycle{app: a, presenter: presenter, show: flags.Show}

	wapp := application.New(application.Options{
		Name:        "HammerOverlay",
		Description: "Discord timestamp converter",
		Services: []application.Service{
			application.NewService(a),
			application.NewService(lc),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(hammeroverlay.Assets),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})

	mainWindow := wapp.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:      "main",
		Title:     "HammerOverlay",
		Width:     480,
		Height:    640,
		MinWidth:  360,
		MinHeight: 420,
		Hidden:    true,
		URL:       "/",
	})
	presenter.Attach(&wailsWindow{app: wapp, win: mainWindow})

	// Closing the window quits the app; HideWindow is the way back to the tray.
	mainWindow.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		if presenter.State().Closed {
			return
		}
		e.Cancel()
		presenter.Close()
	})

	lc.tray = tray.New(newTrayHost(wapp), presenter)
	a.OnHotkeyChange = func(out hotkey.Outcome) {
		if out.Bound {
			lc.tray.SetHotkey(out.Combo.String())
		} else {
			lc.tray.SetHotkey("")
		}
	}
	lc.tray.Start()

	if err := wapp.Run(); err != nil {
		return fmt.Errorf("run window host: %w", err)
	}
	log.Printf("HammerOverlay stopped")
	return nil
}

// lifecycle starts and stops the app with the Wails application.
type lifecycle struct {
	app       *app.App
	presenter *window.Presenter
	tray      *tray.Tray
	show      bool
}

func (l *lifecycle) ServiceStartup(ctx context.Context, _ application.ServiceOptions) error {
	app.Start(ctx, l.app)
	go handleSignals(ctx, l.presenter)

	if l.show {
		application.InvokeAsync(l.presenter.Reveal)
	} else {
		log.Printf("Hiding main window on startup")
	}
	return nil
}

func (l *lifecycle) ServiceShutdown() error {
	app.Stop(context.Background(), l.app)
	l.tray.Stop()
	return nil
}

// handleSignals quits the app on SIGINT/SIGTERM.
func handleSignals(ctx context.Context, p *window.Presenter) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
		p.Close()
	case <-ctx.Done():
	}
}
