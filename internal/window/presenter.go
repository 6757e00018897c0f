// Package window controls the overlay window's visibility and UI signals.
package window

import (
	"log"
	"sync"
)

// Signal is a named event pushed to the UI.
type Signal string

// UI signals.
const (
	SignalShowSettings      Signal = "show-settings"
	SignalShowUpdateChecker Signal = "show-update-checker"
	SignalSettingsChanged   Signal = "settings-changed"
)

// Window is the subset of the webview host the presenter drives.
type Window interface {
	Show()
	Unminimise()
	SetAlwaysOnTop(onTop bool)
	Center()
	Hide()
	Emit(name string, data ...interface{})
	Quit()
}

// State is the presenter's view of the window.
type State struct {
	Visible     bool
	AlwaysOnTop bool
	Closed      bool
}

// Presenter serialises window operations. It is safe for concurrent use from
// the tray, hotkey and command goroutines.
type Presenter struct {
	mu    sync.Mutex
	win   Window
	state State
}

// NewPresenter creates a presenter. The window may be attached later.
func NewPresenter(w Window) *Presenter {
	return &Presenter{win: w}
}

// Attach sets the window once the host has created it.
func (p *Presenter) Attach(w Window) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.win = w
}

func (p *Presenter) ready() bool {
	if p.win == nil {
		log.Printf("[window] Window not ready")
		return false
	}
	return !p.state.Closed
}

// Reveal shows the window, brings it to the front above other windows and
// centres it. Calling it on a visible window has the same end state.
func (p *Presenter) Reveal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready() {
		return
	}

	p.win.Show()
	p.win.Unminimise()
	p.win.SetAlwaysOnTop(true)
	p.win.Center()
	p.state.Visible = true
	p.state.AlwaysOnTop = true
}

// Hide hides the window and drops always-on-top. The UI keeps its state.
func (p *Presenter) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready() {
		return
	}

	if p.state.AlwaysOnTop {
		p.win.SetAlwaysOnTop(false)
	}
	p.win.Hide()
	p.state.Visible = false
	p.state.AlwaysOnTop = false
}

// Close quits the application.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready() {
		return
	}

	log.Printf("[window] Closing application")
	p.state = State{Closed: true}
	p.win.Quit()
}

// Emit pushes sig to the UI.
func (p *Presenter) Emit(sig Signal, data ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready() {
		return
	}
	p.win.Emit(string(sig), data...)
}

// State returns a snapshot of the window state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
