package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "focusflow", cfg.Storage.Key)
	assert.Equal(t, time.Minute, cfg.Reminders.Interval)
	assert.Equal(t, time.Minute, cfg.Reminders.LeadTime)
	assert.Equal(t, "Inbox", cfg.Defaults.List)
	assert.Equal(t, "P3", cfg.Defaults.Priority)
	assert.Equal(t, "P2", cfg.Defaults.QuickPriority)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_GetStoragePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = "/data"
	cfg.Storage.Filename = "board.db"
	assert.Equal(t, "/data/board.db", cfg.GetStoragePath())

	cfg.Storage.Filename = ":memory:"
	assert.Equal(t, ":memory:", cfg.GetStoragePath())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("FF_STORAGE_DRIVER", "json")
	t.Setenv("FF_STORAGE_DIR", "/tmp/ff")
	t.Setenv("FF_STORAGE_QUERY_TIMEOUT", "3s")
	t.Setenv("FF_STORAGE_DIR_PERMISSIONS", "700")
	t.Setenv("FF_REMINDERS_INTERVAL", "30s")
	t.Setenv("FF_DEFAULT_LIST", "Work")
	t.Setenv("FF_VALIDATION_TITLE_MAX", "80")
	t.Setenv("FF_APP_VERBOSE", "true")
	t.Setenv("FF_APP_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/ff", cfg.Storage.Dir)
	assert.Equal(t, 3*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.Equal(t, 30*time.Second, cfg.Reminders.Interval)
	assert.Equal(t, "Work", cfg.Defaults.List)
	assert.Equal(t, 80, cfg.Validation.TitleMaxLength)
	assert.True(t, cfg.Application.Verbose)
	// unparseable values keep the previous setting
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad driver", func(c *Config) { c.Storage.Driver = "bolt" }, "storage.driver"},
		{"empty dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"zero query timeout", func(c *Config) { c.Storage.QueryTimeout = 0 }, "storage.query_timeout"},
		{"sub-second interval", func(c *Config) { c.Reminders.Interval = 100 * time.Millisecond }, "reminders.interval"},
		{"bad priority", func(c *Config) { c.Defaults.Priority = "P9" }, "defaults.priority"},
		{"bad quick priority", func(c *Config) { c.Defaults.QuickPriority = "high" }, "defaults.quick_priority"},
		{"zero title length", func(c *Config) { c.Validation.TitleMaxLength = 0 }, "validation.title_max_length"},
		{"empty time format", func(c *Config) { c.Display.TimeFormat = "" }, "display.time_format"},
		{"bad encoding", func(c *Config) { c.Application.LogEncoding = "xml" }, "application.log_encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Storage.Dir = "/tmp"
			tt.mutate(cfg)

			err := cfg.Validate()

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("five", time.Second))
	assert.Equal(t, 42, ParseIntWithFallback("42", 1))
	assert.Equal(t, 1, ParseIntWithFallback("x", 1))
	assert.True(t, ParseBoolWithFallback("1", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("755", 8, 0))
	assert.Equal(t, uint32(7), ParseUint32WithFallback("9", 8, 7))
}
