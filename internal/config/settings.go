package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/hammeroverlay/hammeroverlay/internal/hotkey"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// SettingsKey is the top-level key under which AppSettings is stored.
const SettingsKey = "settings"

// wireSettings mirrors AppSettings with pointer fields so a missing
// field fails validation instead of silently taking its zero value.
type wireSettings struct {
	AutoStart            *bool   `json:"auto_start" validate:"required"`
	GlobalHotkey         *string `json:"global_hotkey" validate:"required,combo"`
	AutoCloseOnFocusLoss *bool   `json:"auto_close_on_focus_loss" validate:"required"`
	AutoLoadClipboard    *bool   `json:"auto_load_clipboard" validate:"required"`
	UseLLMParsing        *bool   `json:"use_llm_parsing" validate:"required"`
	Theme                *string `json:"theme" validate:"required,oneof=dark light system"`
}

func toWire(s *models.AppSettings) *wireSettings {
	theme := string(s.Theme)
	hotkey := s.GlobalHotkey
	return &wireSettings{
		AutoStart:            &s.AutoStart,
		GlobalHotkey:         &hotkey,
		AutoCloseOnFocusLoss: &s.AutoCloseOnFocusLoss,
		AutoLoadClipboard:    &s.AutoLoadClipboard,
		UseLLMParsing:        &s.UseLLMParsing,
		Theme:                &theme,
	}
}

func (w *wireSettings) settings() *models.AppSettings {
	return &models.AppSettings{
		AutoStart:            *w.AutoStart,
		GlobalHotkey:         *w.GlobalHotkey,
		AutoCloseOnFocusLoss: *w.AutoCloseOnFocusLoss,
		AutoLoadClipboard:    *w.AutoLoadClipboard,
		UseLLMParsing:        *w.UseLLMParsing,
		Theme:                models.Theme(*w.Theme),
	}
}

// Store persists AppSettings in a JSON key-value file.
type Store struct {
	path     string
	validate *validator.Validate
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	v := validator.New()
	_ = v.RegisterValidation("combo", validateCombo)
	return &Store{
		path:     path,
		validate: v,
	}
}

// validateCombo accepts strings the hotkey parser can bind.
func validateCombo(fl validator.FieldLevel) bool {
	_, err := hotkey.Parse(fl.Field().String())
	return err == nil
}

// OpenStore creates a store backed by the default settings.json.
func OpenStore() (*Store, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings. A missing, unreadable or invalid file yields
// the full default record; Load never returns a partially populated value.
func (s *Store) Load() *models.AppSettings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[settings] No settings found, using defaults")
		} else {
			log.Printf("[settings] Failed to read %s, using defaults: %v", s.path, err)
		}
		return models.NewAppSettings()
	}

	settings, err := s.decode(data)
	if err != nil {
		log.Printf("[settings] Failed to parse settings, using defaults: %v", err)
		return models.NewAppSettings()
	}
	return settings
}

func (s *Store) decode(data []byte) (*models.AppSettings, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid store document: %w", err)
	}

	raw, ok := doc[SettingsKey]
	if !ok {
		return nil, fmt.Errorf("no %q key in store", SettingsKey)
	}

	var w wireSettings
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("invalid settings value: %w", err)
	}
	if err := s.validate.Struct(&w); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return w.settings(), nil
}

// Save validates and persists settings. Other top-level keys already in
// the file are kept. A failed write leaves the previous file untouched.
func (s *Store) Save(settings *models.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("settings must not be nil")
	}
	if _, err := hotkey.Parse(settings.GlobalHotkey); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := s.validate.Struct(toWire(settings)); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if data, err := os.ReadFile(s.path); err == nil {
		if jsonErr := json.Unmarshal(data, &doc); jsonErr != nil {
			log.Printf("[settings] Existing store is corrupt, overwriting: %v", jsonErr)
			doc = map[string]json.RawMessage{}
		}
	}

	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	doc[SettingsKey] = value

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	if err := WriteFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[settings] Settings saved to %s", s.path)
	return nil
}

// Reset overwrites the stored settings with defaults.
func (s *Store) Reset() error {
	return s.Save(models.NewAppSettings())
}
