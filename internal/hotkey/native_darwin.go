package hotkey

import "golang.design/x/hotkey"

var nativeModifiers = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModAlt:   hotkey.ModOption,
	ModShift: hotkey.ModShift,
	ModSuper: hotkey.ModCmd,
}
