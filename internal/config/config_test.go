package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if cfg.Storage.Dir != "" {
		t.Errorf("Storage.Dir = %q, want empty", cfg.Storage.Dir)
	}
	if cfg.Console.ShowMenuAfterCommand {
		t.Error("Console.ShowMenuAfterCommand should be false by default")
	}
	if !cfg.Console.Color {
		t.Error("Console.Color should be true by default")
	}
	if cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging.MaxSizeMB = %d, want 10", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups = %d, want 3", cfg.Logging.MaxBackups)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate, got %v", errs)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Logging.Level != "info" || !cfg.Console.Color {
			t.Errorf("Load() = %+v, want defaults", cfg)
		}
	})

	t.Run("reads yaml file", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "storage:\n  dir: /tmp/tasks\nlogging:\n  enabled: true\n  level: debug\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			t.Fatalf("ReadInConfig: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Storage.Dir != "/tmp/tasks" {
			t.Errorf("Storage.Dir = %q, want /tmp/tasks", cfg.Storage.Dir)
		}
		if !cfg.Logging.Enabled || cfg.Logging.Level != "debug" {
			t.Errorf("Logging = %+v, want enabled debug", cfg.Logging)
		}
		if cfg.Logging.MaxBackups != 3 {
			t.Errorf("unset keys should keep defaults, MaxBackups = %d", cfg.Logging.MaxBackups)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()
		viper.Set("logging.level", "verbose")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail for invalid log level")
		}
	})
}

func TestStorageConfig_ResolveDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		dir  string
		want string
	}{
		{"", ""},
		{"data", "data"},
		{"/abs/path", "/abs/path"},
		{"~", home},
		{"~/tasks", filepath.Join(home, "tasks")},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			s := StorageConfig{Dir: tt.dir}
			if got := s.ResolveDir(); got != tt.want {
				t.Errorf("ResolveDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggingConfig_ResolveFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	l := LoggingConfig{}
	if got, want := l.ResolveFile(), filepath.Join("/xdg", "tasker", "tasker.log"); got != want {
		t.Errorf("ResolveFile() = %q, want %q", got, want)
	}

	l.File = "/var/log/tasker.log"
	if got := l.ResolveFile(); got != "/var/log/tasker.log" {
		t.Errorf("ResolveFile() = %q, want explicit path", got)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := ConfigDir(); got != "/custom/config/tasker" {
			t.Errorf("ConfigDir() = %q, want /custom/config/tasker", got)
		}
		if got := ConfigFile(); got != "/custom/config/tasker/config.yaml" {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		if got := ConfigDir(); !strings.HasSuffix(got, filepath.Join(".config", "tasker")) {
			t.Errorf("ConfigDir() = %q, want suffix .config/tasker", got)
		}
	})
}
