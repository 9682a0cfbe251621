package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete tasker configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Console ConsoleConfig `mapstructure:"console" yaml:"console"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig controls where task files are saved and loaded
type StorageConfig struct {
	// Dir is the directory save/load file names are resolved in.
	// Empty means the current working directory. Supports ~ expansion.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ConsoleConfig controls the interactive menu
type ConsoleConfig struct {
	// ShowMenuAfterCommand reprints the menu after every command (default: false)
	ShowMenuAfterCommand bool `mapstructure:"show_menu_after_command" yaml:"show_menu_after_command"`
	// Color enables styled output when the terminal supports it (default: true)
	Color bool `mapstructure:"color" yaml:"color"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// File is the log file path. Empty means <config dir>/tasker.log.
	File string `mapstructure:"file" yaml:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir: "",
		},
		Console: ConsoleConfig{
			ShowMenuAfterCommand: false,
			Color:                true,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("storage.dir", defaults.Storage.Dir)

	viper.SetDefault("console.show_menu_after_command", defaults.Console.ShowMenuAfterCommand)
	viper.SetDefault("console.color", defaults.Console.Color)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ResolveDir returns the storage directory with ~ expanded. An empty Dir
// stays empty so that file names resolve against the working directory.
func (s *StorageConfig) ResolveDir() string {
	return expandHome(s.Dir)
}

// ResolveFile returns the log file path, defaulting to tasker.log in the
// config directory.
func (l *LoggingConfig) ResolveFile() string {
	if l.File == "" {
		return filepath.Join(ConfigDir(), "tasker.log")
	}
	return expandHome(l.File)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasker")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasker"
	}
	return filepath.Join(home, ".config", "tasker")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
