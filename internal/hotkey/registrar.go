package hotkey

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// DefaultFallbacks are tried, in order, after the user's preferred combo.
var DefaultFallbacks = []string{
	"ctrl+shift+h",
	"ctrl+alt+h",
	"ctrl+shift+d",
	"alt+shift+h",
}

// Outcome is the result of a registration attempt: Bound(combo) or Unbound.
type Outcome struct {
	Bound bool
	Combo Combo
}

// Unbound is the outcome when no candidate could be registered.
var Unbound = Outcome{}

// BoundTo returns the outcome for a successful registration of c.
func BoundTo(c Combo) Outcome {
	return Outcome{Bound: true, Combo: c}
}

func (o Outcome) String() string {
	if !o.Bound {
		return "Unbound"
	}
	return fmt.Sprintf("Bound(%s)", o.Combo)
}

// Registrar owns the single global hotkey slot. All methods are safe for
// concurrent use; registration attempts are serialised.
type Registrar struct {
	mu        sync.Mutex
	binder    Binder
	fallbacks []string
	onTrigger func()

	active  Binding
	outcome Outcome
}

// NewRegistrar creates a registrar that calls onTrigger whenever the bound
// combo is pressed. A nil fallbacks slice means DefaultFallbacks.
func NewRegistrar(binder Binder, fallbacks []string, onTrigger func()) *Registrar {
	if fallbacks == nil {
		fallbacks = DefaultFallbacks
	}
	return &Registrar{
		binder:    binder,
		fallbacks: append([]string(nil), fallbacks...),
		onTrigger: onTrigger,
	}
}

// Candidates returns the ordered combos Apply would try for preferred.
// Later duplicates of an earlier candidate are dropped.
func (r *Registrar) Candidates(preferred string) []string {
	out := make([]string, 0, len(r.fallbacks)+1)
	seen := make(map[string]bool)
	for _, raw := range append([]string{preferred}, r.fallbacks...) {
		key := raw
		if c, err := Parse(raw); err == nil {
			key = c.String()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, raw)
	}
	return out
}

// Apply releases any current binding and registers the first candidate that
// succeeds: the preferred combo, then the fallbacks. When every candidate
// fails the outcome is Unbound; that is not an error for the caller. If the
// current combo cannot be released it stays bound and nothing is attempted.
func (r *Registrar) Apply(preferred string) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.releaseLocked(); err != nil {
		log.Printf("[hotkey] Keeping %s", r.outcome)
		return r.outcome
	}

	for i, raw := range r.Candidates(preferred) {
		combo, err := Parse(raw)
		if err != nil {
			log.Printf("[hotkey] Skipping candidate %d: %v", i, err)
			continue
		}

		log.Printf("[hotkey] Attempting to register hotkey: %s", combo)
		binding, err := r.binder.Bind(combo, r.trigger)
		if err != nil {
			log.Printf("[hotkey] Failed to register hotkey '%s': %v", combo, err)
			continue
		}

		r.active = binding
		r.outcome = BoundTo(combo)
		if i == 0 {
			log.Printf("[hotkey] Successfully registered global shortcut: %s", combo)
		} else {
			log.Printf("[hotkey] Successfully registered fallback hotkey: %s", combo)
		}
		return r.outcome
	}

	log.Printf("[hotkey] No hotkey could be registered; window is reachable from the tray only")
	r.outcome = Unbound
	return r.outcome
}

// Register binds exactly combo with no fallback. The current binding is
// released first; if combo cannot be bound the previous combo is restored
// and the error is returned.
func (r *Registrar) Register(raw string) error {
	combo, err := Parse(raw)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.outcome
	if previous.Bound && previous.Combo.Equal(combo) {
		return nil
	}
	if err := r.releaseLocked(); err != nil {
		return fmt.Errorf("failed to release hotkey %s: %w", previous.Combo, err)
	}

	binding, err := r.binder.Bind(combo, r.trigger)
	if err == nil {
		r.active = binding
		r.outcome = BoundTo(combo)
		log.Printf("[hotkey] Registered hotkey: %s", combo)
		return nil
	}
	bindErr := fmt.Errorf("failed to register hotkey %s: %w", combo, err)

	if previous.Bound {
		restored, rerr := r.binder.Bind(previous.Combo, r.trigger)
		if rerr != nil {
			log.Printf("[hotkey] Failed to restore previous hotkey %s: %v", previous.Combo, rerr)
			return errors.Join(bindErr, rerr)
		}
		r.active = restored
		r.outcome = previous
		log.Printf("[hotkey] Restored previous hotkey: %s", previous.Combo)
	}
	return bindErr
}

// Outcome returns the current registration state.
func (r *Registrar) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Release unbinds the current combo, if any. When the OS refuses, the
// binding is kept and the error returned.
func (r *Registrar) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.releaseLocked()
}

func (r *Registrar) releaseLocked() error {
	if r.active == nil {
		return nil
	}
	if err := r.active.Unbind(); err != nil {
		log.Printf("[hotkey] Failed to unregister %s: %v", r.outcome.Combo, err)
		return err
	}
	r.active = nil
	r.outcome = Unbound
	return nil
}

func (r *Registrar) trigger() {
	if r.onTrigger != nil {
		r.onTrigger()
	}
}
