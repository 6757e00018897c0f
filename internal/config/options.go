package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. HAMMEROVERLAY_DATA_DIR.
const EnvPrefix = "HAMMEROVERLAY_"

// DefaultReleasesURL is the GitHub endpoint for the latest release.
const DefaultReleasesURL = "https://api.github.com/repos/hammeroverlay/hammeroverlay/releases/latest"

// DefaultUpdateTimeout is the update request timeout in seconds.
const DefaultUpdateTimeout = 30

// GetDefaultOptions returns the built-in option values.
func GetDefaultOptions() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":       "",
		"releases_url":   DefaultReleasesURL,
		"update_timeout": DefaultUpdateTimeout,
		"log_file":       false,
	}
}

// DefaultOptions returns the built-in options without consulting the
// options file or the environment.
func DefaultOptions() *models.Options {
	return &models.Options{
		ReleasesURL:   DefaultReleasesURL,
		UpdateTimeout: DefaultUpdateTimeout,
	}
}

// LoadOptions loads runtime options from the default options.json and the environment.
func LoadOptions() (*models.Options, error) {
	path, err := OptionsFile()
	if err != nil {
		return nil, err
	}
	return LoadOptionsFrom(path)
}

// LoadOptionsFrom loads runtime options.
// Priority: Environment variables > options file > Defaults
func LoadOptionsFrom(path string) (*models.Options, error) {
	k := koanf.New(".")

	for key, value := range GetDefaultOptions() {
		k.Set(key, value)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load options file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment options: %w", err)
	}

	var opts models.Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	if err := validator.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("options validation failed: %w", err)
	}

	return &opts, nil
}

// envTransform converts environment variable names to option keys.
// Example: HAMMEROVERLAY_UPDATE_TIMEOUT -> update_timeout
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
