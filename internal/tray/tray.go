package tray

import (
	"log"
	"sync"
)

// Host is the native tray surface provided by the window host.
type Host interface {
	SetIcon(icon []byte)
	SetTooltip(tooltip string)
	// SetMenu installs items; onClick receives the id of a clicked item.
	SetMenu(items []Item, onClick func(MenuID))
	Destroy()
}

// Tray owns the tray icon and routes menu clicks to Actions.
type Tray struct {
	host    Host
	actions Actions

	mu      sync.Mutex
	hotkey  string
	started bool
}

// New creates a tray on host. Nothing is shown until Start.
func New(host Host, a Actions) *Tray {
	return &Tray{host: host, actions: a}
}

// Start installs the icon, tooltip and menu.
func (t *Tray) Start() {
	icon, err := iconBytes()
	if err != nil {
		log.Printf("[tray] Failed to render icon: %v", err)
	} else {
		t.host.SetIcon(icon)
	}

	t.mu.Lock()
	t.host.SetTooltip(formatTooltip(t.hotkey))
	t.started = true
	t.mu.Unlock()

	t.host.SetMenu(Items(), func(id MenuID) { t.Click(id) })
	log.Printf("[tray] Tray icon installed")
}

// Stop removes the tray icon.
func (t *Tray) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return
	}
	t.started = false
	t.host.Destroy()
	log.Printf("[tray] Tray removed")
}

// SetHotkey updates the tooltip with the bound combo. An empty string
// means no hotkey is bound.
func (t *Tray) SetHotkey(combo string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hotkey = combo
	if t.started {
		t.host.SetTooltip(formatTooltip(combo))
	}
}

// Click handles a menu click. It reports false for ids outside the menu.
func (t *Tray) Click(id MenuID) bool {
	return Dispatch(t.actions, id)
}
