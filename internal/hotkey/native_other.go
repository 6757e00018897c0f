//go:build !darwin && !linux && !windows

package hotkey

import "errors"

// NativeBinder reports that global hotkeys are unavailable on this platform.
type NativeBinder struct{}

// NewNativeBinder creates a binder that always fails.
func NewNativeBinder() *NativeBinder {
	return &NativeBinder{}
}

// Bind always fails; the registrar then ends Unbound.
func (NativeBinder) Bind(Combo, func()) (Binding, error) {
	return nil, errors.New("global hotkeys are not supported on this platform")
}
