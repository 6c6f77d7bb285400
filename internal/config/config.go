package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"task-tracker/internal/clock"
	"task-tracker/internal/datetime"
)

// Storage backends understood by CreateRepository.
const (
	BackendSQLite = "sqlite"
	BackendText   = "text"
)

// Colour modes for Display.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration options for the task tracker
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Validation  ValidationConfig  `toml:"validation"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
	Commands    CommandsConfig    `toml:"commands"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Backend        string `toml:"backend" env:"TK_STORAGE"`
	Dir            string `toml:"dir" env:"TK_DATA_DIR"`
	Filename       string `toml:"filename" env:"TK_DB_FILENAME"`
	TextFilename   string `toml:"text-filename" env:"TK_TEXT_FILENAME"`
	DirPermissions uint32 `toml:"dir-permissions" env:"TK_DATA_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	DescriptionMinLength int `toml:"description-min-length" env:"TK_VALIDATION_DESCRIPTION_MIN"`
	DescriptionMaxLength int `toml:"description-max-length" env:"TK_VALIDATION_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Width int    `toml:"width" env:"TK_DISPLAY_WIDTH"`
	Color string `toml:"color" env:"TK_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TK_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TK_APP_VERBOSE"`
	// Now pins the clock to a fixed ISO local date-time when set.
	Now string `toml:"now" env:"TK_NOW"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ExportDefaultFormat string `toml:"export-default-format" env:"TK_EXPORT_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            filepath.Join(homeDir, ".tk"),
			Filename:       "tk.db",
			TextFilename:   "tasks.txt",
			DirPermissions: 0o755,
		},
		Validation: ValidationConfig{
			DescriptionMinLength: 1,
			DescriptionMaxLength: 255,
		},
		Display: DisplayConfig{
			Width: 80,
			Color: ColorAuto,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
		},
		Commands: CommandsConfig{
			ExportDefaultFormat: "csv",
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetTextFilePath returns the full path to the plain-text task file
func (c *Config) GetTextFilePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.TextFilename)
}

// Clock returns the clock commands should read "now" from.
func (c *Config) Clock() (clock.Clock, error) {
	if c.Application.Now == "" {
		return clock.System{}, nil
	}
	ts, err := datetime.ParseISO(c.Application.Now)
	if err != nil {
		return nil, err
	}
	return clock.Fixed{At: ts.Std()}, nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("TK_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("TK_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TK_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if filename := os.Getenv("TK_TEXT_FILENAME"); filename != "" {
		c.Storage.TextFilename = filename
	}
	if perms := os.Getenv("TK_DATA_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Validation configuration
	if minLen := os.Getenv("TK_VALIDATION_DESCRIPTION_MIN"); minLen != "" {
		c.Validation.DescriptionMinLength = ParseIntWithFallback(minLen, c.Validation.DescriptionMinLength)
	}
	if maxLen := os.Getenv("TK_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Display configuration
	if width := os.Getenv("TK_DISPLAY_WIDTH"); width != "" {
		c.Display.Width = ParseIntWithFallback(width, c.Display.Width)
	}
	if color := os.Getenv("TK_DISPLAY_COLOR"); color != "" {
		c.Display.Color = strings.ToLower(color)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Display.Color = ColorNever
	}

	// Application configuration
	if timeout := os.Getenv("TK_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TK_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if now := os.Getenv("TK_NOW"); now != "" {
		c.Application.Now = now
	}

	// Commands configuration
	if format := os.Getenv("TK_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = strings.ToLower(format)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendText:
	default:
		return &ConfigError{Field: "storage.backend", Message: "storage backend must be 'sqlite' or 'text', got '" + c.Storage.Backend + "'"}
	}
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}
	if c.Storage.TextFilename == "" {
		return &ConfigError{Field: "storage.text-filename", Message: "text filename cannot be empty"}
	}

	if c.Validation.DescriptionMinLength < 1 {
		return &ConfigError{Field: "validation.description-min-length", Message: "description minimum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < c.Validation.DescriptionMinLength {
		return &ConfigError{Field: "validation.description-max-length", Message: "description maximum length must be greater than minimum length"}
	}

	if c.Display.Width < 20 {
		return &ConfigError{Field: "display.width", Message: "display width must be at least 20"}
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &ConfigError{Field: "display.color", Message: "color must be 'auto', 'always' or 'never'"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if c.Application.Now != "" {
		if _, err := datetime.ParseISO(c.Application.Now); err != nil {
			return &ConfigError{Field: "application.now", Message: "now must look like 2024-12-18T14:30"}
		}
	}

	switch c.Commands.ExportDefaultFormat {
	case "csv", "json", "yaml", "xlsx":
	default:
		return &ConfigError{Field: "commands.export-default-format", Message: "export format must be one of csv, json, yaml, xlsx"}
	}

	return nil
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
