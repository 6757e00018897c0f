// Package tray implements the system tray icon and menu.
package tray

import (
	"log"

	"github.com/hammeroverlay/hammeroverlay/internal/window"
)

// MenuID identifies a tray menu item.
type MenuID string

// Menu item ids.
const (
	MenuShow         MenuID = "show"
	MenuSettings     MenuID = "settings"
	MenuCheckUpdates MenuID = "check_updates"
	MenuQuit         MenuID = "quit"
)

// Tooltip is the tray tooltip prefix.
const Tooltip = "HammerOverlay - Discord Timestamp Converter"

// Item is a tray menu entry. A separator has no ID.
type Item struct {
	ID        MenuID
	Label     string
	Separator bool
}

// menu lists the tray items in display order.
var menu = []Item{
	{ID: MenuShow, Label: "Show HammerOverlay"},
	{ID: MenuSettings, Label: "Settings"},
	{ID: MenuCheckUpdates, Label: "Check for Updates"},
	{Separator: true},
	{ID: MenuQuit, Label: "Quit"},
}

// Items returns the tray menu in display order.
func Items() []Item {
	return append([]Item(nil), menu...)
}

// Actions is what a tray click can do to the application.
type Actions interface {
	Reveal()
	Emit(sig window.Signal, data ...interface{})
	Close()
}

// Dispatch performs the action for id. It reports false for unknown ids,
// which are logged and otherwise ignored.
func Dispatch(a Actions, id MenuID) bool {
	switch id {
	case MenuShow:
		a.Reveal()
	case MenuSettings:
		a.Reveal()
		a.Emit(window.SignalShowSettings)
	case MenuCheckUpdates:
		a.Reveal()
		a.Emit(window.SignalShowUpdateChecker)
	case MenuQuit:
		log.Printf("[tray] Quit requested")
		a.Close()
	default:
		log.Printf("[tray] Unknown menu item: %q", id)
		return false
	}
	return true
}

func formatTooltip(hotkey string) string {
	if hotkey == "" {
		return Tooltip + " (no hotkey)"
	}
	return Tooltip + " (" + hotkey + ")"
}
