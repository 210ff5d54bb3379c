// Package config loads, defaults and validates the thunar-vfs
// configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (THUNAR_VFS_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete thunar-vfs configuration.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Locales is the ordered locale preference list used for launcher
	// Name lookups and localized renames. Empty means "derive from the
	// LANGUAGE/LC_ALL/LC_MESSAGES/LANG environment".
	Locales []string `mapstructure:"locales"`

	// Cache specifies the classification cache backend and its
	// type-specific configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Monitor contains directory monitor settings
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// CacheConfig specifies the classification cache configuration.
//
// The Type field determines which backend is used. Only the corresponding
// type-specific section is read; the sections are free-form maps decoded
// by the matching backend factory.
type CacheConfig struct {
	// Type specifies which cache backend to use
	// Valid values: none, memory, badger
	Type string `mapstructure:"type" validate:"required,oneof=none memory badger"`

	// Memory contains memory-specific configuration
	// Only used when Type = "memory"
	Memory map[string]any `mapstructure:"memory"`

	// Badger contains BadgerDB-specific configuration
	// Only used when Type = "badger"
	Badger map[string]any `mapstructure:"badger"`
}

// MonitorConfig contains directory monitor settings.
type MonitorConfig struct {
	// MaxWatches bounds the number of simultaneously watched
	// directories; 0 means unbounded
	MaxWatches int `mapstructure:"max_watches" validate:"gte=0"`
}

// Load loads configuration from file, environment, and defaults.
//
// configPath selects an explicit config file; the empty string falls back
// to $XDG_CONFIG_HOME/thunar-vfs/config.yaml. A missing default config
// file is not an error, the defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures environment variables and config file lookup.
func setupViper(v *viper.Viper, configPath string) {
	// Example: THUNAR_VFS_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("THUNAR_VFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configPath == "" {
			// No default config file present; defaults apply.
			return nil
		}
		if configPath == "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the default configuration directory.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "thunar-vfs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "thunar-vfs")
}
