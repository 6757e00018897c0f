//go:build darwin || linux || windows

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"
)

var nativeKeys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,

	"space":      hotkey.KeySpace,
	"enter":      hotkey.KeyReturn,
	"escape":     hotkey.KeyEscape,
	"tab":        hotkey.KeyTab,
	"delete":     hotkey.KeyDelete,
	"arrowup":    hotkey.KeyUp,
	"arrowdown":  hotkey.KeyDown,
	"arrowleft":  hotkey.KeyLeft,
	"arrowright": hotkey.KeyRight,
}

// NativeBinder registers hotkeys with the operating system.
type NativeBinder struct{}

// NewNativeBinder creates a binder backed by golang.design/x/hotkey.
func NewNativeBinder() *NativeBinder {
	return &NativeBinder{}
}

// Bind registers combo with the OS. A conflict with another application
// surfaces as an error from Register.
func (NativeBinder) Bind(combo Combo, onTrigger func()) (Binding, error) {
	key, ok := nativeKeys[combo.Key()]
	if !ok {
		return nil, fmt.Errorf("key %q has no native code", combo.Key())
	}

	mods := make([]hotkey.Modifier, 0, len(combo.Modifiers()))
	for _, m := range combo.Modifiers() {
		nm, ok := nativeModifiers[m]
		if !ok {
			return nil, fmt.Errorf("modifier %s is not supported on this platform", m)
		}
		mods = append(mods, nm)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, err
	}

	b := &nativeBinding{hk: hk, done: make(chan struct{})}
	go b.listen(onTrigger)
	return b, nil
}

type nativeBinding struct {
	hk       *hotkey.Hotkey
	done     chan struct{}
	mu       sync.Mutex
	released bool
}

func (b *nativeBinding) listen(onTrigger func()) {
	keydown := b.hk.Keydown()
	for {
		select {
		case <-b.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			onTrigger()
		}
	}
}

// Unbind unregisters the combo. The listener keeps running until the OS
// has released it, so a failed Unbind leaves the binding usable.
func (b *nativeBinding) Unbind() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil
	}
	if err := b.hk.Unregister(); err != nil {
		return err
	}
	b.released = true
	close(b.done)
	return nil
}
