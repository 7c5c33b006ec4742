package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
)

// Config holds all configuration options for the focusflow application
type Config struct {
	Storage     StorageConfig
	Reminders   RemindersConfig
	Defaults    DefaultsConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig

	// Source is the config file that was loaded, empty when none was found.
	Source string
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	Driver         string        `env:"FF_STORAGE_DRIVER"`
	Dir            string        `env:"FF_STORAGE_DIR"`
	Filename       string        `env:"FF_STORAGE_FILENAME"`
	Key            string        `env:"FF_STORAGE_KEY"`
	QueryTimeout   time.Duration `env:"FF_STORAGE_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"FF_STORAGE_DIR_PERMISSIONS"`
}

// RemindersConfig holds reminder scan configuration
type RemindersConfig struct {
	Interval time.Duration `env:"FF_REMINDERS_INTERVAL"`
	LeadTime time.Duration `env:"FF_REMINDERS_LEAD_TIME"`
}

// DefaultsConfig holds the values applied to new tasks
type DefaultsConfig struct {
	List          string `env:"FF_DEFAULT_LIST"`
	Priority      string `env:"FF_DEFAULT_PRIORITY"`
	QuickPriority string `env:"FF_DEFAULT_QUICK_PRIORITY"`
	Color         string `env:"FF_DEFAULT_COLOR"`
	Title         string `env:"FF_DEFAULT_TITLE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength int `env:"FF_VALIDATION_TITLE_MAX"`
	TagMaxLength   int `env:"FF_VALIDATION_TAG_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `env:"FF_DISPLAY_TIME_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `env:"FF_APP_TIMEOUT"`
	Verbose     bool          `env:"FF_APP_VERBOSE"`
	LogLevel    string        `env:"FF_LOG_LEVEL"`
	LogEncoding string        `env:"FF_LOG_ENCODING"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".focusflow")

	return &Config{
		Storage: StorageConfig{
			Driver:         DriverSQLite,
			Dir:            defaultDir,
			Filename:       "focusflow.db",
			Key:            "focusflow",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Reminders: RemindersConfig{
			Interval: time.Minute,
			LeadTime: time.Minute,
		},
		Defaults: DefaultsConfig{
			List:          "Inbox",
			Priority:      "P3",
			QuickPriority: "P2",
			Color:         "#3b82f6",
			Title:         "(untitled)",
		},
		Validation: ValidationConfig{
			TitleMaxLength: 255,
			TagMaxLength:   50,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Verbose:     false,
			LogLevel:    "info",
			LogEncoding: "console",
		},
	}
}

// GetStoragePath returns the full path to the storage file
func (c *Config) GetStoragePath() string {
	if c.Storage.Filename == ":memory:" {
		return c.Storage.Filename
	}
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the storage query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if driver := os.Getenv("FF_STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if dir := os.Getenv("FF_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("FF_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if key := os.Getenv("FF_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if timeout := os.Getenv("FF_STORAGE_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if perms := os.Getenv("FF_STORAGE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Reminder configuration
	if interval := os.Getenv("FF_REMINDERS_INTERVAL"); interval != "" {
		c.Reminders.Interval = ParseDurationWithFallback(interval, c.Reminders.Interval)
	}
	if lead := os.Getenv("FF_REMINDERS_LEAD_TIME"); lead != "" {
		c.Reminders.LeadTime = ParseDurationWithFallback(lead, c.Reminders.LeadTime)
	}

	// Defaults
	if list := os.Getenv("FF_DEFAULT_LIST"); list != "" {
		c.Defaults.List = list
	}
	if priority := os.Getenv("FF_DEFAULT_PRIORITY"); priority != "" {
		c.Defaults.Priority = priority
	}
	if priority := os.Getenv("FF_DEFAULT_QUICK_PRIORITY"); priority != "" {
		c.Defaults.QuickPriority = priority
	}
	if color := os.Getenv("FF_DEFAULT_COLOR"); color != "" {
		c.Defaults.Color = color
	}
	if title := os.Getenv("FF_DEFAULT_TITLE"); title != "" {
		c.Defaults.Title = title
	}

	// Validation configuration
	if maxLen := os.Getenv("FF_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("FF_VALIDATION_TAG_MAX"); maxLen != "" {
		c.Validation.TagMaxLength = ParseIntWithFallback(maxLen, c.Validation.TagMaxLength)
	}

	// Display configuration
	if format := os.Getenv("FF_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("FF_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("FF_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := os.Getenv("FF_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if encoding := os.Getenv("FF_LOG_ENCODING"); encoding != "" {
		c.Application.LogEncoding = encoding
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Driver != DriverSQLite && c.Storage.Driver != DriverJSON {
		return &ConfigError{Field: "storage.driver", Message: "storage driver must be sqlite or json"}
	}
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.Key == "" {
		return &ConfigError{Field: "storage.key", Message: "storage key cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Reminders.Interval < time.Second {
		return &ConfigError{Field: "reminders.interval", Message: "reminder interval must be at least 1s"}
	}
	if c.Reminders.LeadTime <= 0 {
		return &ConfigError{Field: "reminders.lead_time", Message: "reminder lead time must be positive"}
	}

	if c.Defaults.List == "" {
		return &ConfigError{Field: "defaults.list", Message: "default list cannot be empty"}
	}
	if !isPriority(c.Defaults.Priority) {
		return &ConfigError{Field: "defaults.priority", Message: "default priority must be one of P0, P1, P2, P3"}
	}
	if !isPriority(c.Defaults.QuickPriority) {
		return &ConfigError{Field: "defaults.quick_priority", Message: "quick-add priority must be one of P0, P1, P2, P3"}
	}
	if c.Defaults.Title == "" {
		return &ConfigError{Field: "defaults.title", Message: "placeholder title cannot be empty"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.TagMaxLength < 1 {
		return &ConfigError{Field: "validation.tag_max_length", Message: "tag maximum length must be at least 1"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch c.Application.LogEncoding {
	case "console", "json":
	default:
		return &ConfigError{Field: "application.log_encoding", Message: "log encoding must be console or json"}
	}

	return nil
}

func isPriority(s string) bool {
	switch s {
	case "P0", "P1", "P2", "P3":
		return true
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
