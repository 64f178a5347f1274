// ============================================================================
// sccalc - Scriptable Calculator
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"

	mdwlog "github.com/msto63/sccalc/foundation/core/log"
)

var (
	// Process-wide base configuration used by New
	baseConfig   = DefaultLoggerConfig("sccalc")
	baseConfigMu sync.RWMutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: console, text, json or logfmt (default: console)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration. Calculator output goes
// to stdout, so logs stay on stderr and only warnings are shown.
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "console",
		Output: os.Stderr,
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatConsole
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  ParseLevel(cfg.Level),
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
}

// Configure sets the base configuration used by New and installs a matching
// Foundation default logger, which the calculator packages fall back to.
func Configure(cfg LoggerConfig) *mdwlog.Logger {
	baseConfigMu.Lock()
	baseConfig = cfg
	baseConfigMu.Unlock()

	logger := NewLogger(cfg)
	mdwlog.SetDefault(logger)
	return logger
}

// NewSimpleLogger creates a logger from the base configuration
func NewSimpleLogger(name string) *mdwlog.Logger {
	baseConfigMu.RLock()
	cfg := baseConfig
	baseConfigMu.RUnlock()

	cfg.Name = name
	return NewLogger(cfg)
}

// ParseLevel converts a string level to mdwlog.Level. Unknown levels map to
// warn.
func ParseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelWarn
	}
	return parsed
}
