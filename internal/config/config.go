package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for configuration fields.
const (
	DefaultDatabaseURL      = "myapp.db"
	DefaultConnInfoPath     = "db_connection.txt"
	DefaultVisualizerDir    = "db_visualizer"
	DefaultLockTimeout      = 5 * time.Second
	DefaultStatementTimeout = 30 * time.Second
)

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	DatabaseURL      string
	ConnInfoPath     string
	VisualizerDir    string
	LockTimeout      time.Duration
	StatementTimeout time.Duration
}

// yamlConfig is the raw YAML file representation with string durations.
type yamlConfig struct {
	DatabaseURL      string `yaml:"database_url"`
	ConnInfoPath     string `yaml:"conninfo_path"`
	VisualizerDir    string `yaml:"visualizer_dir"`
	LockTimeout      string `yaml:"lock_timeout"`
	StatementTimeout string `yaml:"statement_timeout"`
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		DatabaseURL:      DefaultDatabaseURL,
		ConnInfoPath:     DefaultConnInfoPath,
		VisualizerDir:    DefaultVisualizerDir,
		LockTimeout:      DefaultLockTimeout,
		StatementTimeout: DefaultStatementTimeout,
	}
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

	if raw.DatabaseURL != "" {
		cfg.DatabaseURL = raw.DatabaseURL
	}

	if raw.ConnInfoPath != "" {
		cfg.ConnInfoPath = raw.ConnInfoPath
	}

	if raw.VisualizerDir != "" {
		cfg.VisualizerDir = raw.VisualizerDir
	}

	if raw.LockTimeout != "" {
		d, err := time.ParseDuration(raw.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing lock_timeout %q: %w", raw.LockTimeout, err)
		}

		cfg.LockTimeout = d
	}

	if raw.StatementTimeout != "" {
		d, err := time.ParseDuration(raw.StatementTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing statement_timeout %q: %w", raw.StatementTimeout, err)
		}

		cfg.StatementTimeout = d
	}

	return cfg, nil
}

// MergeEnv overrides config fields from TTTDB_* environment variables.
// A plain DATABASE_URL is honored as a weaker fallback for the database URL.
func MergeEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	if v := os.Getenv("TTTDB_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	if v := os.Getenv("TTTDB_CONNINFO_PATH"); v != "" {
		cfg.ConnInfoPath = v
	}

	if v := os.Getenv("TTTDB_VISUALIZER_DIR"); v != "" {
		cfg.VisualizerDir = v
	}

	if v := os.Getenv("TTTDB_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LockTimeout = d
		}
	}

	if v := os.Getenv("TTTDB_STATEMENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.StatementTimeout = d
		}
	}
}
