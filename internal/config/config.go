// Package config loads esaudit settings from defaults, an optional TOML file
// and ESAUDIT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// PathEnv names the variable that overrides the config file location.
const PathEnv = "ESAUDIT_CONFIG"

type Config struct {
	LogLevel   string `toml:"log_level" env:"ESAUDIT_LOG_LEVEL"`     // debug|info|warn|error (default "warn")
	NoColor    bool   `toml:"no_color" env:"ESAUDIT_NO_COLOR"`       // disable ANSI output
	Workers    int    `toml:"workers" env:"ESAUDIT_WORKERS"`         // chain hashing fan-out (default NumCPU)
	S3Region   string `toml:"s3_region" env:"ESAUDIT_S3_REGION"`     // default "us-east-1"
	S3Endpoint string `toml:"s3_endpoint" env:"ESAUDIT_S3_ENDPOINT"` // custom endpoint for MinIO
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Workers:  runtime.NumCPU(),
		S3Region: "us-east-1",
	}
}

// DefaultPath returns $ESAUDIT_CONFIG, or ~/.config/esaudit/config.toml.
func DefaultPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "esaudit", "config.toml")
}

// Load builds a Config. An explicit path must exist; when path is empty the
// default location is tried and silently skipped if absent.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || explicit {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings that cannot be used.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel maps debug|info|warn|error to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
}
