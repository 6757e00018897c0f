package desktop

import (
	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/hammeroverlay/hammeroverlay/internal/tray"
)

// trayHost is the Wails system tray. Wails drives it from its own event
// loop, next to the webview.
type trayHost struct {
	app  *application.App
	tray *application.SystemTray
}

func newTrayHost(app *application.App) *trayHost {
	return &trayHost{app: app, tray: app.SystemTray.New()}
}

func (h *trayHost) SetIcon(icon []byte) {
	h.tray.SetIcon(icon)
}

func (h *trayHost) SetTooltip(tooltip string) {
	h.tray.SetTooltip(tooltip)
}

func (h *trayHost) SetMenu(items []tray.Item, onClick func(tray.MenuID)) {
	menu := h.app.NewMenu()
	for _, item := range items {
		if item.Separator {
			menu.AddSeparator()
			continue
		}
		id := item.ID
		menu.Add(item.Label).OnClick(func(*application.Context) {
			onClick(id)
		})
	}
	h.tray.SetMenu(menu)
}

func (h *trayHost) Destroy() {
	h.tray.Destroy()
}
