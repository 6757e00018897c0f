package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsFrom_Defaults(t *testing.T) {
	opts, err := LoadOptionsFrom(filepath.Join(t.TempDir(), OptionsFileName))
	require.NoError(t, err)

	assert.Equal(t, DefaultReleasesURL, opts.ReleasesURL)
	assert.Equal(t, 30, opts.UpdateTimeout)
	assert.False(t, opts.LogFile)
}

func TestLoadOptionsFrom_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), OptionsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"update_timeout": 60, "data_dir": "/from/file"}`), 0644))
	t.Setenv("HAMMEROVERLAY_DATA_DIR", "/from/env")

	opts, err := LoadOptionsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 60, opts.UpdateTimeout)
	assert.Equal(t, "/from/env", opts.DataDir)
}

func TestLoadOptionsFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), OptionsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"update_timeout": 0}`), 0644))

	_, err := LoadOptionsFrom(path)
	assert.Error(t, err)
}

func TestLoadOptionsFrom_BadURL(t *testing.T) {
	t.Setenv("HAMMEROVERLAY_RELEASES_URL", "not a url")

	_, err := LoadOptionsFrom("")
	assert.Error(t, err)
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "update_timeout", envTransform("HAMMEROVERLAY_UPDATE_TIMEOUT"))
	assert.Equal(t, "data_dir", envTransform("HAMMEROVERLAY_DATA_DIR"))
}

func TestDefaultOptionsMatchLoadedDefaults(t *testing.T) {
	opts, err := LoadOptionsFrom(filepath.Join(t.TempDir(), OptionsFileName))
	require.NoError(t, err)

	assert.Equal(t, opts, DefaultOptions())
}
