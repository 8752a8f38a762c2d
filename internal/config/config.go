package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config captures everything the client reads at startup.
type Config struct {
	ServerURL      string        `koanf:"server_url"`
	PollWait       int           `koanf:"poll_wait"` // seconds
	PollGrace      time.Duration `koanf:"poll_grace"`
	RetryBackoff   time.Duration `koanf:"retry_backoff"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	PrefsPath      string        `koanf:"prefs_path"`
	LogLevel       string        `koanf:"log_level"`
	LogFile        string        `koanf:"log_file"`
	MetricsAddr    string        `koanf:"metrics_addr"`
	RateLimit      float64       `koanf:"rate_limit"`
	RateBurst      int           `koanf:"rate_burst"`
}

const (
	defaultConfigPath     = "~/.config/skillshare/config.toml"
	defaultServerURL      = "http://localhost:8000"
	defaultPollWait       = 90
	defaultPollGrace      = 30 * time.Second
	defaultRetryBackoff   = 500 * time.Millisecond
	defaultRequestTimeout = 10 * time.Second
	defaultPrefsPath      = "~/.config/skillshare/prefs.toml"
	defaultLogLevel       = "info"
	defaultLogFile        = "~/.local/state/skillshare/skillshare.log"
	defaultRateLimit      = 5.0
	defaultRateBurst      = 10

	envPrefix = "SKILLSHARE_"
)

func defaults() map[string]any {
	return map[string]any{
		"server_url":      defaultServerURL,
		"poll_wait":       defaultPollWait,
		"poll_grace":      defaultPollGrace,
		"retry_backoff":   defaultRetryBackoff,
		"request_timeout": defaultRequestTimeout,
		"prefs_path":      defaultPrefsPath,
		"log_level":       defaultLogLevel,
		"log_file":        defaultLogFile,
		"metrics_addr":    "",
		"rate_limit":      defaultRateLimit,
		"rate_burst":      defaultRateBurst,
	}
}

// Load layers defaults, the TOML file at path (the default location when
// empty) and SKILLSHARE_* environment variables. A missing file is not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if _, err := os.Stat(resolved); err == nil {
		if err := k.Load(file.Provider(resolved), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// validate rejects durations that can only come from a bare TOML integer,
// which decodes as nanoseconds.
func (c Config) validate() error {
	for _, d := range []struct {
		key   string
		value time.Duration
	}{
		{"poll_grace", c.PollGrace},
		{"retry_backoff", c.RetryBackoff},
		{"request_timeout", c.RequestTimeout},
	} {
		if d.value > 0 && d.value < time.Millisecond {
			return fmt.Errorf("%s = %d: use a duration string such as \"30s\"", d.key, int64(d.value))
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.ServerURL = strings.TrimSpace(c.ServerURL)
	if c.ServerURL == "" {
		c.ServerURL = defaultServerURL
	}
	if c.PollWait <= 0 {
		c.PollWait = defaultPollWait
	}
	if c.PollGrace <= 0 {
		c.PollGrace = defaultPollGrace
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if strings.TrimSpace(c.PrefsPath) == "" {
		c.PrefsPath = defaultPrefsPath
	}
	c.PrefsPath = mustExpand(c.PrefsPath)
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	if c.RateLimit <= 0 {
		c.RateLimit = defaultRateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = defaultRateBurst
	}
}

// Wait returns the long-poll hold hint.
func (c Config) Wait() time.Duration {
	return time.Duration(c.PollWait) * time.Second
}

// PollTimeout is the transport timeout for long polls: the server hold
// plus a grace period for a slow answer.
func (c Config) PollTimeout() time.Duration {
	return c.Wait() + c.PollGrace
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
