// ============================================================================
// sccalc - Scriptable Calculator
// ============================================================================
//
// Package:     config
// Description: Typed application configuration built on the Foundation loader
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	mdwconfig "github.com/msto63/sccalc/foundation/core/config"
	mdwlog "github.com/msto63/sccalc/foundation/core/log"
	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
)

// EnvPrefix prefixes environment overrides, e.g. SCCALC_SCRIPT_STRICT=true
const EnvPrefix = "SCCALC"

// Config holds the complete application configuration
type Config struct {
	Log     LogConfig     `toml:"log"`
	Script  ScriptConfig  `toml:"script"`
	REPL    REPLConfig    `toml:"repl"`
	History HistoryConfig `toml:"history"`

	// File the configuration was read from, empty for defaults
	Source string `toml:"-"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ScriptConfig holds interpreter defaults
type ScriptConfig struct {
	Strict   bool `toml:"strict"`
	Echo     bool `toml:"echo"`
	Debug    bool `toml:"debug"`
	MaxSteps int  `toml:"max_steps"`
}

// REPLConfig holds interactive prompt settings
type REPLConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
}

// HistoryConfig holds evaluation history settings
type HistoryConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Retention Duration `toml:"retention"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Script: ScriptConfig{
			Echo: true,
		},
		REPL: REPLConfig{
			Prompt:      ">> ",
			HistoryFile: "~/.sccalc_history",
		},
		History: HistoryConfig{
			Enabled:   true,
			Path:      "~/.sccalc/history.db",
			Retention: Duration{30 * 24 * time.Hour},
		},
	}
}

// defaults renders Default as the dotted-key map the Foundation loader merges
// below the file contents.
func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
		"script": map[string]interface{}{
			"strict":    d.Script.Strict,
			"echo":      d.Script.Echo,
			"debug":     d.Script.Debug,
			"max_steps": d.Script.MaxSteps,
		},
		"repl": map[string]interface{}{
			"prompt":       d.REPL.Prompt,
			"history_file": d.REPL.HistoryFile,
		},
		"history": map[string]interface{}{
			"enabled":   d.History.Enabled,
			"path":      d.History.Path,
			"retention": d.History.Retention.String(),
		},
	}
}

// SearchPaths returns the files Load tries when no explicit path is given
func SearchPaths() []string {
	options := discoveryOptions("")
	return mdwconfig.ListPossibleConfigFiles(options)
}

func discoveryOptions(path string) mdwconfig.DiscoveryOptions {
	options := mdwconfig.DiscoveryOptions{
		EnvPrefix: EnvPrefix,
		Defaults:  defaults(),
	}
	if path != "" {
		options.Candidates = []string{path}
		options.Required = true
		return options
	}

	options.Candidates = []string{"./sccalc.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		options.Paths = []string{filepath.Join(home, ".config", "sccalc")}
		options.Filenames = []string{"config"}
	}
	return options
}

// Load reads the configuration. An explicit path must exist; otherwise the
// first of ./sccalc.toml and ~/.config/sccalc/config.{toml,yaml,yml} is used,
// falling back to defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	if path != "" {
		expanded, err := mdwfilex.ExpandHome(os.ExpandEnv(path))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = expanded
	}

	source, err := mdwconfig.Discover(discoveryOptions(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := fromSource(source)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromString parses TOML content with the same defaults as Load
func LoadFromString(content string) (*Config, error) {
	source, err := mdwconfig.LoadFromString(content, mdwconfig.FormatTOML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := fromSource(source)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromSource(source *mdwconfig.Config) *Config {
	d := Default()
	return &Config{
		Log: LogConfig{
			Level:  source.GetString("log.level", d.Log.Level),
			Format: source.GetString("log.format", d.Log.Format),
		},
		Script: ScriptConfig{
			Strict:   source.GetBool("script.strict", d.Script.Strict),
			Echo:     source.GetBool("script.echo", d.Script.Echo),
			Debug:    source.GetBool("script.debug", d.Script.Debug),
			MaxSteps: source.GetInt("script.max_steps", d.Script.MaxSteps),
		},
		REPL: REPLConfig{
			Prompt:      source.GetString("repl.prompt", d.REPL.Prompt),
			HistoryFile: source.GetString("repl.history_file", d.REPL.HistoryFile),
		},
		History: HistoryConfig{
			Enabled:   source.GetBool("history.enabled", d.History.Enabled),
			Path:      source.GetString("history.path", d.History.Path),
			Retention: Duration{source.GetDuration("history.retention", d.History.Retention.Duration)},
		},
		Source: source.FilePath(),
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if _, err := mdwlog.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Script.MaxSteps < 0 {
		return fmt.Errorf("script.max_steps must be >= 0, got %d", c.Script.MaxSteps)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	if c.History.Retention.Duration < 0 {
		return fmt.Errorf("history.retention must not be negative")
	}
	return nil
}

// HistoryPath returns History.Path with a leading ~ expanded
func (c *Config) HistoryPath() (string, error) {
	return mdwfilex.ExpandHome(os.ExpandEnv(c.History.Path))
}

// LineHistoryPath returns REPL.HistoryFile with a leading ~ expanded
func (c *Config) LineHistoryPath() (string, error) {
	return mdwfilex.ExpandHome(os.ExpandEnv(c.REPL.HistoryFile))
}

// Encode renders the configuration as TOML
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite && mdwfilex.Exists(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}

	content, err := Default().Encode()
	if err != nil {
		return err
	}
	if err := mdwfilex.EnsureParentDir(path, 0o755); err != nil {
		return err
	}
	if err := mdwfilex.WriteString(path, string(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
