package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("FF_STORAGE_DIR", dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoader_NoFile(t *testing.T) {
	dir := clearEnv(t)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.Empty(t, cfg.Source)
}

func TestLoader_DefaultFileWithComments(t *testing.T) {
	dir := clearEnv(t)
	path := writeConfig(t, dir, `{
		// storage settings
		"storage": {"driver": "json", "filename": "board.json"},
		"reminders": {"interval": "30s", "lead_time": "5m"},
		"defaults": {"list": "Work",},
		"application": {"log_level": "debug"},
	}`)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, "board.json", cfg.Storage.Filename)
	assert.Equal(t, 30*time.Second, cfg.Reminders.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Reminders.LeadTime)
	assert.Equal(t, "Work", cfg.Defaults.List)
	assert.Equal(t, "debug", cfg.Application.LogLevel)
	// env wins over the file for the directory
	assert.Equal(t, dir, cfg.Storage.Dir)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := clearEnv(t)
	writeConfig(t, dir, `{"defaults": {"list": "Work"}}`)
	t.Setenv("FF_DEFAULT_LIST", "Home")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "Home", cfg.Defaults.List)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		setup func(t *testing.T, dir string) *Loader
	}{
		{
			name: "missing explicit file",
			setup: func(t *testing.T, dir string) *Loader {
				return NewLoader().WithConfigFile(filepath.Join(dir, "nope.json"))
			},
		},
		{
			name: "malformed file",
			setup: func(t *testing.T, dir string) *Loader {
				writeConfig(t, dir, `{"storage": `)
				return NewLoader()
			},
		},
		{
			name: "bad duration",
			setup: func(t *testing.T, dir string) *Loader {
				writeConfig(t, dir, `{"reminders": {"interval": "soon"}}`)
				return NewLoader()
			},
		},
		{
			name: "invalid value",
			setup: func(t *testing.T, dir string) *Loader {
				writeConfig(t, dir, `{"defaults": {"priority": "urgent"}}`)
				return NewLoader()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := clearEnv(t)

			_, err := tt.setup(t, dir).Load()

			assert.Error(t, err)
		})
	}
}

func TestLoader_ExplicitFileFromEnv(t *testing.T) {
	clearEnv(t)
	other := t.TempDir()
	path := filepath.Join(other, "ff.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"display": {"time_format": "15:04"}}`), 0o600))
	t.Setenv(ConfigFileEnv, path)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "15:04", cfg.Display.TimeFormat)
	assert.Equal(t, path, cfg.Source)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	clearEnv(t)
	driver := DriverJSON
	interval := 10 * time.Second
	verbose := true
	badEncoding := "xml"

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		StorageDriver:    &driver,
		ReminderInterval: &interval,
		Verbose:          &verbose,
	})

	require.NoError(t, err)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, interval, cfg.Reminders.Interval)
	assert.True(t, cfg.Application.Verbose)

	_, err = NewLoader().LoadWithOverrides(&ConfigOverrides{LogEncoding: &badEncoding})
	assert.Error(t, err)
}
