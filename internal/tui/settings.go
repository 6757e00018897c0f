package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammeroverlay/hammeroverlay/internal/hotkey"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// FieldType defines the type of a settings field.
type FieldType int

const (
	fieldText FieldType = iota
	fieldToggle
	fieldChoice
)

// Field keys, matching the settings file.
const (
	keyHotkey           = "global_hotkey"
	keyTheme            = "theme"
	keyAutoStart        = "auto_start"
	keyCloseOnFocusLoss = "auto_close_on_focus_loss"
	keyLoadClipboard    = "auto_load_clipboard"
	keyLLMParsing       = "use_llm_parsing"
)

var themeChoices = []string{string(models.ThemeDark), string(models.ThemeLight), string(models.ThemeSystem)}

// SettingsField is a single field in the settings form.
type SettingsField struct {
	Label     string
	Key       string
	Value     string
	BoolValue bool
	Choices   []string
	Type      FieldType
}

// SettingsForm edits an AppSettings record.
type SettingsForm struct {
	fields  []SettingsField
	cursor  int
	editing bool
	dirty   bool
	errMsg  string
	input   textinput.Model
	width   int
}

// NewSettingsForm creates a new settings form.
func NewSettingsForm() *SettingsForm {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Placeholder = models.DefaultHotkey
	return &SettingsForm{
		input: ti,
	}
}

// LoadFrom populates fields from s.
func (f *SettingsForm) LoadFrom(s *models.AppSettings) {
	f.fields = []SettingsField{
		{Label: "Global hotkey", Key: keyHotkey, Value: s.GlobalHotkey, Type: fieldText},
		{Label: "Theme", Key: keyTheme, Value: string(s.Theme), Choices: themeChoices, Type: fieldChoice},
		{Label: "Launch at login", Key: keyAutoStart, BoolValue: s.AutoStart, Type: fieldToggle},
		{Label: "Close on focus loss", Key: keyCloseOnFocusLoss, BoolValue: s.AutoCloseOnFocusLoss, Type: fieldToggle},
		{Label: "Load clipboard", Key: keyLoadClipboard, BoolValue: s.AutoLoadClipboard, Type: fieldToggle},
		{Label: "LLM parsing", Key: keyLLMParsing, BoolValue: s.UseLLMParsing, Type: fieldToggle},
	}
	f.cursor = 0
	f.dirty = false
	f.errMsg = ""
}

// Settings returns the record described by the form.
func (f *SettingsForm) Settings() *models.AppSettings {
	s := models.NewAppSettings()
	for _, field := range f.fields {
		switch field.Key {
		case keyHotkey:
			s.GlobalHotkey = field.Value
		case keyTheme:
			s.Theme = models.Theme(field.Value)
		case keyAutoStart:
			s.AutoStart = field.BoolValue
		case keyCloseOnFocusLoss:
			s.AutoCloseOnFocusLoss = field.BoolValue
		case keyLoadClipboard:
			s.AutoLoadClipboard = field.BoolValue
		case keyLLMParsing:
			s.UseLLMParsing = field.BoolValue
		}
	}
	return s
}

// Dirty reports whether any field changed since LoadFrom.
func (f *SettingsForm) Dirty() bool {
	return f.dirty
}

// Err returns the last validation message, if any.
func (f *SettingsForm) Err() string {
	return f.errMsg
}

// SetWidth updates the rendering width.
func (f *SettingsForm) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 24
}

// MoveUp moves cursor up.
func (f *SettingsForm) MoveUp() {
	if !f.editing && f.cursor > 0 {
		f.cursor--
	}
}

// MoveDown moves cursor down.
func (f *SettingsForm) MoveDown() {
	if !f.editing && f.cursor < len(f.fields)-1 {
		f.cursor++
	}
}

// Toggle flips a boolean field or advances a choice field.
func (f *SettingsForm) Toggle() bool {
	if f.cursor < 0 || f.cursor >= len(f.fields) {
		return false
	}
	field := &f.fields[f.cursor]
	switch field.Type {
	case fieldToggle:
		field.BoolValue = !field.BoolValue
	case fieldChoice:
		field.Value = nextChoice(field.Choices, field.Value)
	default:
		return false
	}
	f.dirty = true
	return true
}

func nextChoice(choices []string, current string) string {
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// StartEdit begins inline editing of the current text field.
func (f *SettingsForm) StartEdit() bool {
	if f.cursor < 0 || f.cursor >= len(f.fields) {
		return false
	}
	field := f.fields[f.cursor]
	if field.Type != fieldText {
		return false
	}
	f.editing = true
	f.errMsg = ""
	f.input.SetValue(field.Value)
	f.input.CursorEnd()
	f.input.Focus()
	return true
}

// FinishEdit validates and confirms the current edit. An invalid hotkey
// keeps the editor open and sets Err.
func (f *SettingsForm) FinishEdit() bool {
	if !f.editing {
		return false
	}

	field := &f.fields[f.cursor]
	newVal := strings.TrimSpace(f.input.Value())

	if field.Key == keyHotkey {
		combo, err := hotkey.Parse(newVal)
		if err != nil {
			f.errMsg = err.Error()
			return false
		}
		newVal = combo.String()
	}

	f.editing = false
	f.errMsg = ""
	f.input.Blur()

	if newVal != field.Value {
		field.Value = newVal
		f.dirty = true
		return true
	}
	return false
}

// CancelEdit cancels the current edit.
func (f *SettingsForm) CancelEdit() {
	f.editing = false
	f.errMsg = ""
	f.input.Blur()
}

// IsEditing returns whether a field is being edited.
func (f *SettingsForm) IsEditing() bool {
	return f.editing
}

// InputModel returns the text input model for Update forwarding.
func (f *SettingsForm) InputModel() *textinput.Model {
	return &f.input
}

// View renders the settings form.
func (f *SettingsForm) View() string {
	var lines []string
	for i, field := range f.fields {
		var line string
		label := settingsLabelStyle.Render(field.Label + ":")

		switch {
		case field.Type == fieldToggle:
			if field.BoolValue {
				line = label + " " + settingsToggleOn.Render("[ON]")
			} else {
				line = label + " " + settingsToggleOff.Render("[OFF]")
			}
		case f.editing && i == f.cursor:
			line = label + " " + f.input.View()
		case field.Value == "":
			line = label + " " + lipgloss.NewStyle().Foreground(colorDim).Render("(empty)")
		default:
			line = label + " " + settingsValueStyle.Render(field.Value)
			if field.Type == fieldChoice {
				line += " " + hintStyle.Render("‹space›")
			}
		}

		if i == f.cursor {
			line = settingsCursorStyle.Width(f.width).Render(line)
		}
		lines = append(lines, line)
	}

	if f.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(f.errMsg))
	}
	return strings.Join(lines, "\n")
}
