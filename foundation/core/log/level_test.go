// File: level_test.go
// Title: Log Level Tests
// Description: Tests for level names, parsing and filtering.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial tests
// - 2026-10-19 v0.2.0: Colour objects, warn default

package log

import "testing"

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		long  string
		short string
	}{
		{LevelTrace, "trace", "TRC"},
		{LevelDebug, "debug", "DBG"},
		{LevelInfo, "info", "INF"},
		{LevelWarn, "warn", "WRN"},
		{LevelError, "error", "ERR"},
		{LevelFatal, "fatal", "FTL"},
		{LevelAudit, "audit", "AUD"},
		{Level(99), "unknown", "???"},
	}

	for _, tt := range tests {
		t.Run(tt.long, func(t *testing.T) {
			if got := tt.level.String(); got != tt.long {
				t.Errorf("String() = %q, want %q", got, tt.long)
			}
			if got := tt.level.ShortString(); got != tt.short {
				t.Errorf("ShortString() = %q, want %q", got, tt.short)
			}
			if tt.level.Color() == nil {
				t.Error("Color() returned nil")
			}
		})
	}
}

func TestLevelShouldLog(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		minLevel Level
		want     bool
	}{
		{"debug below warn", LevelDebug, LevelWarn, false},
		{"warn at warn", LevelWarn, LevelWarn, true},
		{"error above warn", LevelError, LevelWarn, true},
		{"audit above fatal minimum", LevelAudit, LevelFatal, true},
		{"audit always", LevelAudit, LevelAudit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.ShouldLog(tt.minLevel); got != tt.want {
				t.Errorf("ShouldLog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"ftl", LevelFatal, false},
		{"audit", LevelAudit, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Input: "loud", Type: "level"}
	if err.Error() != "invalid level: loud" {
		t.Errorf("Error() = %q, want %q", err.Error(), "invalid level: loud")
	}
}

func TestAllLevelsOrdered(t *testing.T) {
	levels := AllLevels()
	if len(levels) != 7 {
		t.Fatalf("AllLevels() length = %d, want 7", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Errorf("levels not ascending at %d", i)
		}
	}
	if DefaultLevel() != LevelWarn {
		t.Errorf("DefaultLevel() = %v, want %v", DefaultLevel(), LevelWarn)
	}
}
