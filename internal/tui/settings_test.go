package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

type memStore struct {
	settings *models.AppSettings
	saves    int
	err      error
}

func (s *memStore) Load() *models.AppSettings {
	c := *s.settings
	return &c
}

func (s *memStore) Save(settings *models.AppSettings) error {
	if s.err != nil {
		return s.err
	}
	c := *settings
	s.settings = &c
	s.saves++
	return nil
}

func (s *memStore) Path() string { return "/tmp/settings.json" }

func TestSettingsForm_RoundTrip(t *testing.T) {
	s := models.NewAppSettings()
	s.AutoStart = true
	s.Theme = models.ThemeSystem

	f := NewSettingsForm()
	f.LoadFrom(s)

	assert.Equal(t, s, f.Settings())
	assert.False(t, f.Dirty())
}

func TestSettingsForm_ToggleAndCycle(t *testing.T) {
	f := NewSettingsForm()
	f.LoadFrom(models.NewAppSettings())

	// theme: dark -> light -> system -> dark
	f.MoveDown()
	require.True(t, f.Toggle())
	assert.Equal(t, models.ThemeLight, f.Settings().Theme)
	f.Toggle()
	assert.Equal(t, models.ThemeSystem, f.Settings().Theme)
	f.Toggle()
	assert.Equal(t, models.ThemeDark, f.Settings().Theme)

	f.MoveDown()
	f.Toggle()
	assert.True(t, f.Settings().AutoStart)
	assert.True(t, f.Dirty())
}

func TestSettingsForm_HotkeyEdit(t *testing.T) {
	f := NewSettingsForm()
	f.LoadFrom(models.NewAppSettings())

	require.True(t, f.StartEdit())
	f.InputModel().SetValue("Shift + Alt + K")
	assert.True(t, f.FinishEdit())
	assert.False(t, f.IsEditing())
	assert.Equal(t, "alt+shift+k", f.Settings().GlobalHotkey)
}

func TestSettingsForm_InvalidHotkeyKeepsEditing(t *testing.T) {
	f := NewSettingsForm()
	f.LoadFrom(models.NewAppSettings())

	require.True(t, f.StartEdit())
	f.InputModel().SetValue("ctrl+")
	assert.False(t, f.FinishEdit())
	assert.True(t, f.IsEditing())
	assert.NotEmpty(t, f.Err())
	assert.Contains(t, f.View(), "invalid hotkey")

	f.CancelEdit()
	assert.Equal(t, models.DefaultHotkey, f.Settings().GlobalHotkey)
	assert.False(t, f.Dirty())
}

func TestSettingsForm_ToggleOnTextFieldIsNoop(t *testing.T) {
	f := NewSettingsForm()
	f.LoadFrom(models.NewAppSettings())

	assert.False(t, f.Toggle())
	assert.False(t, f.Dirty())

	f.MoveDown()
	f.MoveDown()
	assert.False(t, f.StartEdit())
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SaveWritesStore(t *testing.T) {
	store := &memStore{settings: models.NewAppSettings()}
	m := NewModel(store)

	m.Update(keyMsg("down"))
	m.Update(keyMsg("down"))
	m.Update(keyMsg("space"))
	_, cmd := m.Update(keyMsg("ctrl+s"))

	require.NotNil(t, cmd)
	assert.True(t, m.Saved())
	assert.Equal(t, 1, store.saves)
	assert.True(t, store.settings.AutoStart)
}

func TestModel_QuitWithoutChanges(t *testing.T) {
	store := &memStore{settings: models.NewAppSettings()}
	m := NewModel(store)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.False(t, m.Saved())
	assert.Zero(t, store.saves)
}

func TestModel_TypingIntoHotkey(t *testing.T) {
	store := &memStore{settings: models.NewAppSettings()}
	m := NewModel(store)

	m.Update(keyMsg("enter"))
	m.form.InputModel().SetValue("")
	m.Update(keyMsg("ctrl+alt+s"))
	m.Update(keyMsg("enter"))
	m.Update(keyMsg("s"))

	assert.True(t, m.Saved())
	assert.Equal(t, "ctrl+alt+s", store.settings.GlobalHotkey)
}

func TestModel_SaveFailureIsShown(t *testing.T) {
	store := &memStore{settings: models.NewAppSettings(), err: errors.New("disk full")}
	m := NewModel(store)

	m.Update(keyMsg("down"))
	m.Update(keyMsg("space"))
	_, cmd := m.Update(keyMsg("ctrl+s"))

	assert.Nil(t, cmd)
	assert.False(t, m.Saved())
	assert.Contains(t, m.View(), "disk full")
}
