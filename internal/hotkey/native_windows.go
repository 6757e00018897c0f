package hotkey

import "golang.design/x/hotkey"

var nativeModifiers = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModAlt:   hotkey.ModAlt,
	ModShift: hotkey.ModShift,
	ModSuper: hotkey.ModWin,
}
