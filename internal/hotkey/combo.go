// Package hotkey parses key combinations and binds the global reveal shortcut.
package hotkey

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Modifier is a platform-neutral modifier key.
type Modifier int

// Modifiers in canonical order.
const (
	ModCtrl Modifier = iota
	ModAlt
	ModShift
	ModSuper
)

var modifierNames = map[Modifier]string{
	ModCtrl:  "ctrl",
	ModAlt:   "alt",
	ModShift: "shift",
	ModSuper: "super",
}

func (m Modifier) String() string {
	return modifierNames[m]
}

// modifierAliases maps accepted spellings to modifiers.
var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"meta":    ModSuper,
	"win":     ModSuper,
}

// keyAliases maps alternative key spellings to their canonical names.
var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
	"up":     "arrowup",
	"down":   "arrowdown",
	"left":   "arrowleft",
	"right":  "arrowright",
}

// Combo is a validated modifier+key chord.
type Combo struct {
	mods []Modifier
	key  string
}

// InvalidComboError reports why a combo string was rejected.
type InvalidComboError struct {
	Input  string
	Reason string
}

func (e *InvalidComboError) Error() string {
	return fmt.Sprintf("invalid hotkey %q: %s", e.Input, e.Reason)
}

// Parse parses a string like "ctrl+shift+h" into a Combo.
func Parse(s string) (Combo, error) {
	invalid := func(reason string) (Combo, error) {
		return Combo{}, &InvalidComboError{Input: s, Reason: reason}
	}

	if strings.TrimSpace(s) == "" {
		return invalid("empty")
	}

	seen := make(map[Modifier]bool)
	var c Combo
	for _, part := range strings.Split(s, "+") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok == "" {
			return invalid("empty segment")
		}

		if tok == "cmdorctrl" || tok == "commandorcontrol" || tok == "cmdorcontrol" || tok == "commandorctrl" {
			tok = "ctrl"
			if runtime.GOOS == "darwin" {
				tok = "super"
			}
		}

		if mod, ok := modifierAliases[tok]; ok {
			if seen[mod] {
				return invalid("duplicate modifier " + mod.String())
			}
			seen[mod] = true
			c.mods = append(c.mods, mod)
			continue
		}

		if alias, ok := keyAliases[tok]; ok {
			tok = alias
		}
		if !IsKnownKey(tok) {
			return invalid("unsupported key " + tok)
		}
		if c.key != "" {
			return invalid("more than one key")
		}
		c.key = tok
	}

	if c.key == "" {
		return invalid("no key")
	}
	if len(c.mods) == 0 {
		return invalid("at least one modifier is required")
	}

	sort.Slice(c.mods, func(i, j int) bool { return c.mods[i] < c.mods[j] })
	return c, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Combo {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Modifiers returns the combo's modifiers in canonical order.
func (c Combo) Modifiers() []Modifier {
	return append([]Modifier(nil), c.mods...)
}

// Key returns the combo's canonical key name.
func (c Combo) Key() string {
	return c.key
}

// IsZero reports whether c is the zero Combo.
func (c Combo) IsZero() bool {
	return c.key == ""
}

// Equal reports whether two combos describe the same chord.
func (c Combo) Equal(other Combo) bool {
	return c.String() == other.String()
}

// String returns the canonical form, e.g. "ctrl+shift+h".
func (c Combo) String() string {
	if c.IsZero() {
		return ""
	}
	parts := make([]string, 0, len(c.mods)+1)
	for _, m := range c.mods {
		parts = append(parts, m.String())
	}
	parts = append(parts, c.key)
	return strings.Join(parts, "+")
}

// IsKnownKey reports whether name is a supported canonical key name.
func IsKnownKey(name string) bool {
	if len(name) == 1 {
		ch := name[0]
		return (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
	}
	switch name {
	case "f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
		"space", "enter", "escape", "tab", "delete",
		"arrowup", "arrowdown", "arrowleft", "arrowright":
		return true
	}
	return false
}
