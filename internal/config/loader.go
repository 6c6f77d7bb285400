package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"task-tracker/internal/logging"
)

// ConfigFileEnv names the variable that points at an alternative config file.
const ConfigFileEnv = "TK_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithConfigFile reads TOML settings from path instead of the default location.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) { l.configFile = path }
}

// WithEnvFile reads dotenv settings from path instead of ./.env.
func WithEnvFile(path string) LoaderOption {
	return func(l *Loader) { l.envFile = path }
}

// NewLoader creates a new configuration loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		config:  NewConfig(),
		envFile: ".env",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file
// 3. Override with environment variables (.env fills in unset ones)
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	// .env first so it can also point TK_CONFIG somewhere else.
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.loadConfigFile(); err != nil {
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	err := godotenv.Load(l.envFile)
	if err == nil {
		logging.Debugf("config: loaded environment from %s", l.envFile)
		return nil
	}
	if os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("read env file %s: %w", l.envFile, err)
}

func (l *Loader) configPath() string {
	if l.configFile != "" {
		return l.configFile
	}
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "tk", "config.toml")
}

func (l *Loader) loadConfigFile() error {
	path := l.configPath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	// Decoding into the defaults leaves keys absent from the file untouched.
	meta, err := toml.Decode(string(data), l.config)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logging.Debugf("config: ignoring unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	l.config.Storage.Backend = strings.ToLower(l.config.Storage.Backend)
	logging.Debugf("config: loaded %s", path)
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	Backend      *string
	DataDir      *string
	DBFilename   *string
	TextFilename *string

	// Validation overrides
	DescriptionMinLength *int
	DescriptionMaxLength *int

	// Display overrides
	Width *int
	Color *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
	Now     *string

	// Commands overrides
	ExportDefaultFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Backend != nil {
		config.Storage.Backend = strings.ToLower(*overrides.Backend)
	}
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}
	if overrides.DBFilename != nil {
		config.Storage.Filename = *overrides.DBFilename
	}
	if overrides.TextFilename != nil {
		config.Storage.TextFilename = *overrides.TextFilename
	}

	if overrides.DescriptionMinLength != nil {
		config.Validation.DescriptionMinLength = *overrides.DescriptionMinLength
	}
	if overrides.DescriptionMaxLength != nil {
		config.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	if overrides.Width != nil {
		config.Display.Width = *overrides.Width
	}
	if overrides.Color != nil {
		config.Display.Color = strings.ToLower(*overrides.Color)
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.Now != nil {
		config.Application.Now = *overrides.Now
	}

	if overrides.ExportDefaultFormat != nil {
		config.Commands.ExportDefaultFormat = strings.ToLower(*overrides.ExportDefaultFormat)
	}
}
