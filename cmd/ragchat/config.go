package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

const (
	defaultAPIURL   = "http://localhost:8000/api"
	defaultLogLevel = zerolog.InfoLevel
)

// flags holds raw command-line values.
type flags struct {
	api      string
	compare  bool
	poll     time.Duration
	upload   string
	logPath  string
	logLevel string
}

// env holds the environment variables the command reads.
type env struct {
	apiURL   string
	logLevel string
}

type config struct {
	apiURL     string
	comparison bool
	poll       time.Duration
	upload     string
	logPath    string
	logLevel   zerolog.Level
}

// resolveConfig validates flags and applies env fallbacks. Flags win over
// env vars, which win over defaults. Env is only read in main().
func resolveConfig(f flags, e env) (config, error) {
	cfg := config{
		apiURL:     firstNonEmpty(f.api, e.apiURL, defaultAPIURL),
		comparison: f.compare,
		poll:       f.poll,
		upload:     f.upload,
		logPath:    f.logPath,
		logLevel:   defaultLogLevel,
	}

	u, err := url.Parse(cfg.apiURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return config{}, fmt.Errorf("invalid API URL %q: must be an http(s) URL", cfg.apiURL)
	}

	if cfg.poll <= 0 {
		return config{}, fmt.Errorf("invalid poll interval %s: must be positive", cfg.poll)
	}

	if cfg.upload != "" && !doublestar.ValidatePattern(cfg.upload) {
		return config{}, fmt.Errorf("invalid upload pattern %q", cfg.upload)
	}

	if lvl := firstNonEmpty(f.logLevel, e.logLevel); lvl != "" {
		level, err := zerolog.ParseLevel(lvl)
		if err != nil {
			return config{}, fmt.Errorf("invalid log level %q: %w", lvl, err)
		}
		cfg.logLevel = level
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// openLogger returns a file logger, or a no-op logger when path is empty.
// The TUI owns the terminal, so logs never go to stderr.
func openLogger(path string, level zerolog.Level) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	return newLogger(f, level), func() { _ = f.Close() }, nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
