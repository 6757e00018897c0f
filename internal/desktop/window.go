package desktop

import (
	"github.com/wailsapp/wails/v3/pkg/application"
)

// wailsWindow adapts a Wails webview window to window.Window.
type wailsWindow struct {
	app *application.App
	win *application.WebviewWindow
}

func (w *wailsWindow) Show() {
	w.win.Show()
	w.win.Focus()
}

func (w *wailsWindow) Unminimise() {
	w.win.UnMinimise()
}

func (w *wailsWindow) SetAlwaysOnTop(onTop bool) {
	w.win.SetAlwaysOnTop(onTop)
}

func (w *wailsWindow) Center() {
	w.win.Center()
}

func (w *wailsWindow) Hide() {
	w.win.Hide()
}

func (w *wailsWindow) Emit(name string, data ...interface{}) {
	w.app.Event.Emit(name, data...)
}

func (w *wailsWindow) Quit() {
	w.app.Quit()
}
