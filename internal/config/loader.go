package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
)

// ConfigFileEnv names the environment variable that points at a config file.
const ConfigFileEnv = "FF_CONFIG"

// DefaultConfigFilename is looked up in the storage directory when FF_CONFIG is unset.
const DefaultConfigFilename = "config.json"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithConfigFile makes the loader read the given JSONC file instead of the default location.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.path = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the JSONC config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	path, explicit := l.configPath()
	if err := l.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) configPath() (string, bool) {
	if l.path != "" {
		return l.path, true
	}
	if env := os.Getenv(ConfigFileEnv); env != "" {
		return env, true
	}
	dir := l.config.Storage.Dir
	if env := os.Getenv("FF_STORAGE_DIR"); env != "" {
		dir = env
	}
	return filepath.Join(dir, DefaultConfigFilename), false
}

// loadFile applies a config file. A missing default file is not an error;
// a missing explicitly named file is.
func (l *Loader) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	file, err := parseFile(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := file.apply(l.config); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	l.config.Source = path
	return nil
}

// fileConfig is the on-disk shape. Durations are Go duration strings.
type fileConfig struct {
	Storage *struct {
		Driver       *string `json:"driver"`
		Dir          *string `json:"dir"`
		Filename     *string `json:"filename"`
		Key          *string `json:"key"`
		QueryTimeout *string `json:"query_timeout"`
	} `json:"storage"`
	Reminders *struct {
		Interval *string `json:"interval"`
		LeadTime *string `json:"lead_time"`
	} `json:"reminders"`
	Defaults *struct {
		List          *string `json:"list"`
		Priority      *string `json:"priority"`
		QuickPriority *string `json:"quick_priority"`
		Color         *string `json:"color"`
		Title         *string `json:"title"`
	} `json:"defaults"`
	Validation *struct {
		TitleMaxLength *int `json:"title_max_length"`
		TagMaxLength   *int `json:"tag_max_length"`
	} `json:"validation"`
	Display *struct {
		TimeFormat *string `json:"time_format"`
	} `json:"display"`
	Application *struct {
		Timeout     *string `json:"timeout"`
		Verbose     *bool   `json:"verbose"`
		LogLevel    *string `json:"log_level"`
		LogEncoding *string `json:"log_encoding"`
	} `json:"application"`
}

func parseFile(data []byte) (*fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var file fileConfig
	if err := json.Unmarshal(standardized, &file); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &file, nil
}

func (f *fileConfig) apply(c *Config) error {
	if s := f.Storage; s != nil {
		setString(&c.Storage.Driver, s.Driver)
		setString(&c.Storage.Dir, s.Dir)
		setString(&c.Storage.Filename, s.Filename)
		setString(&c.Storage.Key, s.Key)
		if err := setDuration(&c.Storage.QueryTimeout, s.QueryTimeout, "storage.query_timeout"); err != nil {
			return err
		}
	}
	if r := f.Reminders; r != nil {
		if err := setDuration(&c.Reminders.Interval, r.Interval, "reminders.interval"); err != nil {
			return err
		}
		if err := setDuration(&c.Reminders.LeadTime, r.LeadTime, "reminders.lead_time"); err != nil {
			return err
		}
	}
	if d := f.Defaults; d != nil {
		setString(&c.Defaults.List, d.List)
		setString(&c.Defaults.Priority, d.Priority)
		setString(&c.Defaults.QuickPriority, d.QuickPriority)
		setString(&c.Defaults.Color, d.Color)
		setString(&c.Defaults.Title, d.Title)
	}
	if v := f.Validation; v != nil {
		if v.TitleMaxLength != nil {
			c.Validation.TitleMaxLength = *v.TitleMaxLength
		}
		if v.TagMaxLength != nil {
			c.Validation.TagMaxLength = *v.TagMaxLength
		}
	}
	if d := f.Display; d != nil {
		setString(&c.Display.TimeFormat, d.TimeFormat)
	}
	if a := f.Application; a != nil {
		if err := setDuration(&c.Application.Timeout, a.Timeout, "application.timeout"); err != nil {
			return err
		}
		if a.Verbose != nil {
			c.Application.Verbose = *a.Verbose
		}
		setString(&c.Application.LogLevel, a.LogLevel)
		setString(&c.Application.LogEncoding, a.LogEncoding)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, field string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return &ConfigError{Field: field, Message: fmt.Sprintf("invalid duration %q", *v)}
	}
	*dst = d
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StorageDriver   *string
	StorageDir      *string
	StorageFilename *string
	StorageKey      *string
	QueryTimeout    *time.Duration

	// Reminder overrides
	ReminderInterval *time.Duration
	ReminderLeadTime *time.Duration

	// Display overrides
	TimeFormat *string

	// Application overrides
	Timeout     *time.Duration
	Verbose     *bool
	LogLevel    *string
	LogEncoding *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StorageDriver != nil {
		config.Storage.Driver = *overrides.StorageDriver
	}
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}
	if overrides.StorageKey != nil {
		config.Storage.Key = *overrides.StorageKey
	}
	if overrides.QueryTimeout != nil {
		config.Storage.QueryTimeout = *overrides.QueryTimeout
	}

	if overrides.ReminderInterval != nil {
		config.Reminders.Interval = *overrides.ReminderInterval
	}
	if overrides.ReminderLeadTime != nil {
		config.Reminders.LeadTime = *overrides.ReminderLeadTime
	}

	if overrides.TimeFormat != nil {
		config.Display.TimeFormat = *overrides.TimeFormat
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogEncoding != nil {
		config.Application.LogEncoding = *overrides.LogEncoding
	}
}
