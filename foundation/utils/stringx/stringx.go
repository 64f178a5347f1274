// File: stringx.go
// Title: Core String Utility Functions
// Description: Small string helpers shared by the calculator packages:
//              blank checks, identifier checks, Unicode-safe truncation and
//              padding for tabular output, and defaulting helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-19 v0.2.0: Trimmed to the helpers the calculator uses, identifier
//                      checks, validation through mdwerror

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"

	mdwerror "github.com/msto63/sccalc/foundation/core/error"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsIdentifier reports whether s is a name of the form [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Truncate truncates a string to maxLen runes, ending with ellipsis if
// anything was cut. Multi-byte characters are never split.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// PadLeft pads s on the left to width runes.
// If the string is already longer than width, it returns the original string.
func PadLeft(s string, width int, pad rune) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(pad), n) + s
}

// PadRight pads s on the right to width runes.
// If the string is already longer than width, it returns the original string.
func PadRight(s string, width int, pad rune) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(string(pad), n)
}

// SplitLines splits a string into lines, handling \n, \r\n and \r endings.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// FromBlankDefault returns s unless it is blank, in which case defaultValue.
func FromBlankDefault(s, defaultValue string) string {
	if IsBlank(s) {
		return defaultValue
	}
	return s
}

// ValidateIdentifier returns a CodeInvalidInput error unless s is a valid name.
func ValidateIdentifier(s string) error {
	if IsIdentifier(s) {
		return nil
	}
	return mdwerror.Newf("'%s' is not a valid name", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("stringx.ValidateIdentifier").
		WithDetail("value", s)
}
