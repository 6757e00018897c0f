// Package tui implements the interactive settings editor.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// SettingsStore persists AppSettings.
type SettingsStore interface {
	Load() *models.AppSettings
	Save(settings *models.AppSettings) error
	Path() string
}

// Model is the bubbletea model of the settings editor.
type Model struct {
	store SettingsStore
	form  *SettingsForm
	saved bool
	err   error
	width int
}

// NewModel creates an editor over the settings in store.
func NewModel(store SettingsStore) *Model {
	form := NewSettingsForm()
	form.LoadFrom(store.Load())
	form.SetWidth(60)
	return &Model{store: store, form: form, width: 60}
}

// Saved reports whether the editor wrote the settings.
func (m *Model) Saved() bool {
	return m.saved
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.form.IsEditing() {
		switch msg.Type {
		case tea.KeyEnter:
			m.form.FinishEdit()
		case tea.KeyEscape:
			m.form.CancelEdit()
		case tea.KeyCtrlC:
			return tea.Quit
		default:
			ti := m.form.InputModel()
			newTI, _ := ti.Update(msg)
			*ti = newTI
		}
		return nil
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return tea.Quit
	case key.Matches(msg, globalKeys.Save):
		if !m.form.Dirty() {
			return tea.Quit
		}
		if err := m.store.Save(m.form.Settings()); err != nil {
			m.err = err
			return nil
		}
		m.saved = true
		return tea.Quit
	case key.Matches(msg, settingsKeys.Up):
		m.form.MoveUp()
	case key.Matches(msg, settingsKeys.Down):
		m.form.MoveDown()
	case key.Matches(msg, settingsKeys.Toggle):
		m.form.Toggle()
	case key.Matches(msg, settingsKeys.Enter):
		if !m.form.StartEdit() {
			m.form.Toggle()
		}
	}
	return nil
}

func (m *Model) View() string {
	view := headerStyle.Render("HammerOverlay settings") + "\n"
	view += pathStyle.Render(m.store.Path()) + "\n\n"
	view += m.form.View() + "\n\n"
	if m.err != nil {
		view += errorStyle.Render(fmt.Sprintf("Save failed: %v", m.err)) + "\n\n"
	}
	if m.form.IsEditing() {
		view += keyStyle.Render("Enter") + " " + hintStyle.Render("confirm") + "  " +
			keyStyle.Render("Esc") + " " + hintStyle.Render("cancel")
	} else {
		view += helpLine(settingsKeys.Down, settingsKeys.Toggle, settingsKeys.Enter, globalKeys.Save, globalKeys.Quit)
	}
	return view + "\n"
}

// EditSettings runs the editor in the terminal. It reports whether the
// settings were saved.
func EditSettings(store SettingsStore) (bool, error) {
	model := NewModel(store)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return false, fmt.Errorf("settings editor: %w", err)
	}
	return model.Saved(), nil
}
