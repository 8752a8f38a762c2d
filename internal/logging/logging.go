// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Mode selects where log output goes.
type Mode int

const (
	// ModeTUI writes JSON lines to the log file so the terminal stays clean.
	ModeTUI Mode = iota
	// ModeCLI writes human-readable lines to stderr.
	ModeCLI
)

// Options configures Setup.
type Options struct {
	Level string
	File  string
	Mode  Mode
	// Stderr overrides os.Stderr in ModeCLI.
	Stderr io.Writer
}

// Setup installs the global logger and returns a closer for any file it
// opened.
func Setup(opts Options) (func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	switch opts.Mode {
	case ModeCLI:
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return func() error { return nil }, nil
	default:
		if strings.TrimSpace(opts.File) == "" {
			log.Logger = zerolog.Nop()
			return func() error { return nil }, nil
		}
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return f.Close, nil
	}
}

// ParseLevel maps a config level name to a zerolog level; blank means info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}
