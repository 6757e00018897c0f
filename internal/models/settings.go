// Package models contains shared data structures used across the application.
package models

// Theme is the UI colour scheme.
type Theme string

// Supported themes.
const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeSystem:
		return true
	}
	return false
}

// DefaultHotkey is bound when the user has never chosen a hotkey.
const DefaultHotkey = "ctrl+shift+h"

// AppSettings represents the user's preferences.
// This corresponds to the "settings" key of settings.json.
type AppSettings struct {
	AutoStart            bool   `json:"auto_start"`
	GlobalHotkey         string `json:"global_hotkey"`
	AutoCloseOnFocusLoss bool   `json:"auto_close_on_focus_loss"`
	AutoLoadClipboard    bool   `json:"auto_load_clipboard"`
	UseLLMParsing        bool   `json:"use_llm_parsing"`
	Theme                Theme  `json:"theme"`
}

// NewAppSettings creates settings with default values.
func NewAppSettings() *AppSettings {
	return &AppSettings{
		AutoStart:            false,
		GlobalHotkey:         DefaultHotkey,
		AutoCloseOnFocusLoss: false,
		AutoLoadClipboard:    true,
		UseLLMParsing:        true,
		Theme:                ThemeDark,
	}
}
