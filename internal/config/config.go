package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pbaille/jot/internal/debounce"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings
type Config struct {
	DBPath         string        `yaml:"db"`
	LogLevel       string        `yaml:"log_level"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
	// Ephemeral keeps all state in memory for the life of the process
	Ephemeral bool `yaml:"ephemeral"`
}

// Default returns the built-in settings rooted at the user's home directory
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:         filepath.Join(home, ".jot", "jot.db"),
		LogLevel:       "warn",
		SearchDebounce: debounce.DefaultDelay,
	}
}

// DefaultPath is where Load looks for a config file when none is given
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jot", "config.yaml")
}

// Load builds the configuration: defaults, then .env, then the YAML file at
// path, then JOT_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("JOT_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JOT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("JOT_SEARCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JOT_SEARCH_DEBOUNCE: %w", err)
		}
		cfg.SearchDebounce = d
	}
	if v := os.Getenv("JOT_EPHEMERAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("JOT_EPHEMERAL: %w", err)
		}
		cfg.Ephemeral = b
	}
	return nil
}
