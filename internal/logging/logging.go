// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the slog loggers used at the orchestration
// boundaries: the comparator, the batch scanner, and the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdiddy/swcompare/pkg/types"
)

// LevelSilent is above every standard level and suppresses all output.
const LevelSilent = slog.Level(100)

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(io.Discard, LevelSilent)
}

// LevelFromString parses debug, info, warn, warning, or error
// case-insensitively. Anything else is warn, the CLI default.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	case "silent", "off":
		return LevelSilent
	default:
		return slog.LevelWarn
	}
}

// LevelFromVerbosity maps -v counts to a level: 0 warn, 1 info, 2+ debug.
// quiet wins over any verbosity.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return LevelSilent
	}
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Open builds the CLI logger. Flags override the configured level when
// verbosity is non-zero or quiet is set. When cfg.File is set, records
// are appended to it instead of stderr and the returned closer closes it.
func Open(cfg types.LogConfig, verbosity int, quiet bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level := LevelFromString(cfg.Level)
	if verbosity > 0 || quiet {
		level = LevelFromVerbosity(verbosity, quiet)
	}

	if cfg.File == "" {
		return New(stderr, level), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Discard(), io.NopCloser(nil), fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}
	return New(f, level), f, nil
}
