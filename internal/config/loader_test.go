package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestYAMLRoundTripInstanceInfo(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), InstanceFileName)
	info := models.NewInstanceInfo(4242, "session", "1.2.3")
	info.StartedAt = info.StartedAt.Truncate(time.Second)

	require.NoError(t, SaveYAML(path, info))

	var got models.InstanceInfo
	require.NoError(t, LoadYAML(path, &got))
	assert.Equal(t, info.PID, got.PID)
	assert.Equal(t, info.SessionID, got.SessionID)
	assert.True(t, info.StartedAt.Equal(got.StartedAt))
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	t.Cleanup(func() { SetDir("") })

	got, err := SettingsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SettingsFileName), got)

	require.NoError(t, SaveInstanceInfo(models.NewInstanceInfo(1, "s", "dev")))
	info, err := LoadInstanceInfo()
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 1, info.PID)

	require.NoError(t, RemoveInstanceInfo())
	info, err = LoadInstanceInfo()
	require.NoError(t, err)
	assert.Nil(t, info)
}
