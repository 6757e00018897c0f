package hotkey

// Binder binds a combo to a callback at the OS level.
type Binder interface {
	// Bind registers combo and calls onTrigger every time it is pressed.
	// It fails when the OS refuses the combo (e.g. held by another app).
	Bind(combo Combo, onTrigger func()) (Binding, error)
}

// Binding is an active OS-level registration.
type Binding interface {
	Unbind() error
}
