package hotkey

import "golang.design/x/hotkey"

// Mod1 is Alt and Mod4 is Super on the usual X11 keymaps.
var nativeModifiers = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModAlt:   hotkey.Mod1,
	ModShift: hotkey.ModShift,
	ModSuper: hotkey.Mod4,
}
