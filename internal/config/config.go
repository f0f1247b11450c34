// Package config loads the tool's configuration from file, environment,
// and flags. The default database location is resolved here, once, at the
// boundary: core packages always receive an explicit path.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for configuration fields.
const (
	DefaultBusyTimeout = 5 * time.Second
	DefaultFormat      = "text"
)

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	DatabasePath string
	BusyTimeout  time.Duration
	Format       string
}

// yamlConfig is the raw YAML file representation with string durations.
type yamlConfig struct {
	DatabasePath string `yaml:"database_path"`
	BusyTimeout  string `yaml:"busy_timeout"`
	Format       string `yaml:"format"`
}

// New returns a Config populated with default values. The database path
// defaults to ~/.dossier/dossier.db when the home directory is known.
func New() *Config {
	return &Config{
		DatabasePath: DefaultPath(),
		BusyTimeout:  DefaultBusyTimeout,
		Format:       DefaultFormat,
	}
}

// DefaultPath returns the conventional dossier database location,
// or empty when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".dossier", "dossier.db")
}

// Load reads a YAML configuration file and returns a Config.
// If allowMissing is true and the file does not exist, defaults are returned.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return New(), nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return fromYAML(&raw)
}

// fromYAML converts the raw YAML representation to a Config with defaults applied.
func fromYAML(raw *yamlConfig) (*Config, error) {
	cfg := New()

	if raw.DatabasePath != "" {
		cfg.DatabasePath = ExpandPath(raw.DatabasePath)
	}

	if raw.BusyTimeout != "" {
		d, err := time.ParseDuration(raw.BusyTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing busy_timeout %q: %w", raw.BusyTimeout, err)
		}

		cfg.BusyTimeout = d
	}

	if raw.Format != "" {
		cfg.Format = raw.Format
	}

	return cfg, nil
}

// MergeEnv overrides config fields from DOSSIER_* environment variables.
func MergeEnv(cfg *Config) {
	if v := os.Getenv("DOSSIER_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = ExpandPath(v)
	}

	if v := os.Getenv("DOSSIER_BUSY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BusyTimeout = d
		}
	}

	if v := os.Getenv("DOSSIER_FORMAT"); v != "" {
		cfg.Format = v
	}
}
