// Package config loads configuration from TOML or YAML files.
//
// Package: config
// Title: Configuration Loading
// Description: Reads TOML (BurntSushi/toml) and YAML (yaml.v3) files into a
//              nested map and exposes dotted-key getters. Environment
//              variables named PREFIX_SECTION_KEY override file values, and
//              defaults fill in whatever the file leaves out. Discover walks a
//              list of candidate paths and settles on the first that exists.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Deep default merge, discovery with defaults fallback
//
// Usage:
//
//	cfg, err := config.Discover(config.DiscoveryOptions{
//		Candidates: []string{"sccalc.toml"},
//		Paths:      []string{filepath.Join(home, ".config", "sccalc")},
//		Filenames:  []string{"config"},
//		EnvPrefix:  "SCCALC",
//		Defaults:   defaults,
//	})
//	strict := cfg.GetBool("script.strict")
package config
