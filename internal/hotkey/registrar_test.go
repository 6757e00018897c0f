package hotkey

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBinding struct {
	b     *fakeBinder
	combo string
}

func (fb *fakeBinding) Unbind() error {
	fb.b.mu.Lock()
	defer fb.b.mu.Unlock()
	if fb.b.stuck[fb.combo] {
		return errors.New("unregister failed")
	}
	delete(fb.b.bound, fb.combo)
	fb.b.unbinds = append(fb.b.unbinds, fb.combo)
	return nil
}

// fakeBinder refuses combos listed in refuse and records every attempt.
type fakeBinder struct {
	mu       sync.Mutex
	refuse   map[string]bool
	stuck    map[string]bool
	attempts []string
	unbinds  []string
	bound    map[string]func()
}

func newFakeBinder(refuse ...string) *fakeBinder {
	b := &fakeBinder{refuse: map[string]bool{}, stuck: map[string]bool{}, bound: map[string]func(){}}
	for _, r := range refuse {
		b.refuse[r] = true
	}
	return b
}

func (b *fakeBinder) Bind(combo Combo, onTrigger func()) (Binding, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	name := combo.String()
	b.attempts = append(b.attempts, name)
	if b.refuse[name] {
		return nil, errors.New("hotkey already registered by another application")
	}
	if _, taken := b.bound[name]; taken {
		return nil, errors.New("overlapping bind")
	}
	b.bound[name] = onTrigger
	return &fakeBinding{b: b, combo: name}, nil
}

func (b *fakeBinder) press(t *testing.T, combo string) {
	t.Helper()
	b.mu.Lock()
	fn, ok := b.bound[combo]
	b.mu.Unlock()
	require.True(t, ok, "combo %s is not bound", combo)
	fn()
}

func TestRegistrar_ApplyPreferred(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{"ctrl+alt+a", "ctrl+alt+b"}, nil)

	out := r.Apply("ctrl+alt+x")

	assert.Equal(t, BoundTo(MustParse("ctrl+alt+x")), out)
	assert.Equal(t, []string{"ctrl+alt+x"}, b.attempts)
}

func TestRegistrar_ApplyStopsAtFirstSuccess(t *testing.T) {
	b := newFakeBinder("ctrl+alt+a", "ctrl+alt+b")
	r := NewRegistrar(b, []string{"ctrl+alt+b", "ctrl+alt+c", "ctrl+alt+d"}, nil)

	out := r.Apply("ctrl+alt+a")

	assert.Equal(t, "Bound(ctrl+alt+c)", out.String())
	assert.Equal(t, []string{"ctrl+alt+a", "ctrl+alt+b", "ctrl+alt+c"}, b.attempts)
}

func TestRegistrar_ApplySkipsUnparseable(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{"ctrl+alt+a"}, nil)

	out := r.Apply("hyper+nonsense")

	assert.Equal(t, BoundTo(MustParse("ctrl+alt+a")), out)
	assert.Equal(t, []string{"ctrl+alt+a"}, b.attempts)
}

func TestRegistrar_ApplyAllFail(t *testing.T) {
	b := newFakeBinder("ctrl+alt+a", "ctrl+alt+b", "ctrl+alt+c")
	r := NewRegistrar(b, []string{"ctrl+alt+b", "ctrl+alt+c"}, nil)

	out := r.Apply("ctrl+alt+a")

	assert.Equal(t, Unbound, out)
	assert.False(t, r.Outcome().Bound)
	assert.Len(t, b.attempts, 3)
}

func TestRegistrar_ApplyDropsDuplicateFallback(t *testing.T) {
	b := newFakeBinder("ctrl+shift+h")
	r := NewRegistrar(b, []string{"shift+ctrl+h", "ctrl+alt+h"}, nil)

	out := r.Apply("ctrl+shift+h")

	assert.Equal(t, BoundTo(MustParse("ctrl+alt+h")), out)
	assert.Equal(t, []string{"ctrl+shift+h", "ctrl+alt+h"}, b.attempts)
}

func TestRegistrar_ApplyReplacesBinding(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)

	r.Apply("ctrl+alt+a")
	r.Apply("ctrl+alt+b")

	assert.Equal(t, []string{"ctrl+alt+a"}, b.unbinds)
	assert.Len(t, b.bound, 1)
	assert.Equal(t, BoundTo(MustParse("ctrl+alt+b")), r.Outcome())
}

func TestRegistrar_TriggerInvokesCallback(t *testing.T) {
	b := newFakeBinder("ctrl+alt+a")
	calls := 0
	r := NewRegistrar(b, []string{"ctrl+alt+b"}, func() { calls++ })

	r.Apply("ctrl+alt+a")
	b.press(t, "ctrl+alt+b")
	b.press(t, "ctrl+alt+b")

	assert.Equal(t, 2, calls)
}

func TestRegistrar_Register(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	r.Apply("ctrl+alt+a")

	require.NoError(t, r.Register("ctrl+alt+b"))

	assert.Equal(t, BoundTo(MustParse("ctrl+alt+b")), r.Outcome())
	assert.Equal(t, []string{"ctrl+alt+a"}, b.unbinds)
}

func TestRegistrar_RegisterSameComboIsNoop(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	r.Apply("ctrl+alt+a")

	require.NoError(t, r.Register("alt+ctrl+A"))

	assert.Equal(t, []string{"ctrl+alt+a"}, b.attempts)
	assert.Empty(t, b.unbinds)
}

func TestRegistrar_RegisterFailureRestoresPrevious(t *testing.T) {
	b := newFakeBinder("ctrl+alt+b")
	r := NewRegistrar(b, []string{}, nil)
	r.Apply("ctrl+alt+a")

	err := r.Register("ctrl+alt+b")

	assert.Error(t, err)
	assert.Equal(t, BoundTo(MustParse("ctrl+alt+a")), r.Outcome())
	assert.Equal(t, []string{"ctrl+alt+a", "ctrl+alt+b", "ctrl+alt+a"}, b.attempts)
}

func TestRegistrar_RegisterInvalidCombo(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	r.Apply("ctrl+alt+a")

	err := r.Register("ctrl")

	var invalid *InvalidComboError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, BoundTo(MustParse("ctrl+alt+a")), r.Outcome())
}

func TestRegistrar_Release(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	r.Apply("ctrl+alt+a")

	require.NoError(t, r.Release())

	assert.Equal(t, Unbound, r.Outcome())
	assert.Empty(t, b.bound)
	require.NoError(t, r.Release())
}

func TestRegistrar_ConcurrentApply(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)

	var wg sync.WaitGroup
	for _, c := range []string{"ctrl+alt+a", "ctrl+alt+b", "ctrl+alt+c", "ctrl+alt+d"} {
		wg.Add(1)
		go func(combo string) {
			defer wg.Done()
			r.Apply(combo)
		}(c)
	}
	wg.Wait()

	assert.True(t, r.Outcome().Bound)
	assert.Len(t, b.bound, 1, "exactly one binding may be held")
}

func TestRegistrar_ApplyKeepsBindingWhenUnbindFails(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	require.True(t, r.Apply("ctrl+alt+a").Bound)
	b.stuck["ctrl+alt+a"] = true

	out := r.Apply("ctrl+alt+b")

	assert.Equal(t, BoundTo(MustParse("ctrl+alt+a")), out)
	assert.Equal(t, out, r.Outcome())
	assert.Equal(t, []string{"ctrl+alt+a"}, b.attempts)
	b.press(t, "ctrl+alt+a")
}

func TestRegistrar_RegisterKeepsBindingWhenUnbindFails(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	require.NoError(t, r.Register("ctrl+alt+a"))
	b.stuck["ctrl+alt+a"] = true

	err := r.Register("ctrl+alt+b")

	require.Error(t, err)
	assert.Equal(t, BoundTo(MustParse("ctrl+alt+a")), r.Outcome())
	assert.Equal(t, []string{"ctrl+alt+a"}, b.attempts)
}

func TestRegistrar_ReleaseFailureKeepsOutcome(t *testing.T) {
	b := newFakeBinder()
	r := NewRegistrar(b, []string{}, nil)
	require.True(t, r.Apply("ctrl+alt+a").Bound)
	b.stuck["ctrl+alt+a"] = true

	assert.Error(t, r.Release())
	assert.True(t, r.Outcome().Bound)

	delete(b.stuck, "ctrl+alt+a")
	require.NoError(t, r.Release())
	assert.Equal(t, Unbound, r.Outcome())
}
