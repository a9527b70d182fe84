// Package config loads the cubeplay configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeplay"
)

// Config holds user settings. Zero fields take their defaults.
type Config struct {
	DBPath           string        `yaml:"db_path"`
	LogLevel         string        `yaml:"log_level"`
	EventLogDir      string        `yaml:"event_log_dir"`
	SolveDuration    time.Duration `yaml:"solve_duration"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
}

// Defaults for settings the file leaves out.
const (
	DefaultLogLevel         = "info"
	DefaultAutosaveInterval = 30 * time.Second
)

// Dir returns the cubeplay directory in the user's home, creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubeplay")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when there is no file.
// DBPath is left empty so storage picks its own default.
func Default() Config {
	return Config{
		LogLevel:         DefaultLogLevel,
		SolveDuration:    cubeplay.DefaultSolveDuration,
		AutosaveInterval: DefaultAutosaveInterval,
	}
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(file)

	if cfg.SolveDuration < 0 || cfg.AutosaveInterval < 0 {
		return cfg, fmt.Errorf("config %s: durations must not be negative", path)
	}
	return cfg, nil
}

// Save writes the config to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EventLogPath returns the event log directory, defaulting to logs/ under
// the cubeplay directory.
func (c Config) EventLogPath() (string, error) {
	if c.EventLogDir != "" {
		return c.EventLogDir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

func (c *Config) merge(o Config) {
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.EventLogDir != "" {
		c.EventLogDir = o.EventLogDir
	}
	if o.SolveDuration != 0 {
		c.SolveDuration = o.SolveDuration
	}
	if o.AutosaveInterval != 0 {
		c.AutosaveInterval = o.AutosaveInterval
	}
}
