// File: phrases.go
// Title: Phrase Splitting for Command Lines
// Description: Splits a command line into phrases and a script source into
//              numbered, executable lines.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package stringx

import (
	"strings"
	"unicode"
)

// SplitPhrases splits line on whitespace. Double quotes delimit a phrase that
// may contain whitespace; the quotes themselves are dropped. A backslash
// escapes '"' and '\'; any other escaped character is dropped together with
// its backslash. Empty phrases are never returned.
func SplitPhrases(line string) []string {
	var (
		phrases []string
		current strings.Builder
		inQuote bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 < len(runes) {
				if next := runes[i+1]; next == '"' || next == '\\' {
					current.WriteRune(next)
				}
			}
			i++
		case r == '"':
			inQuote = !inQuote
		case inQuote:
			current.WriteRune(r)
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				phrases = append(phrases, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		phrases = append(phrases, current.String())
	}
	return phrases
}

// Line is one executable source line with its 1-based line number.
type Line struct {
	Text   string
	Number int
}

// SourceLines splits a script into trimmed lines, dropping blank lines and
// lines starting with '#'. Numbers refer to the original source.
func SourceLines(source string) []Line {
	var lines []Line
	for i, raw := range SplitLines(source) {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{Text: text, Number: i + 1})
	}
	return lines
}
