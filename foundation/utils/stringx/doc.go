// File: doc.go
// Title: Package Documentation for stringx
// Description: Package stringx provides the string helpers shared by the
//              calculator packages.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core string utilities
// - 2025-01-26 v0.2.0: Enhanced documentation
// - 2026-10-19 v0.3.0: Phrase splitting and script line handling

// Package stringx provides string helpers for the calculator.
//
// Package: stringx
// Title: String Operations for sccalc Foundation
// Description: Blank and identifier checks, padding for tabular output, and
//              the phrase splitter used by every command line.
//
// Phrases
//
// Commands are split into phrases on whitespace. Double quotes group text
// into one phrase, and a backslash escapes a quote or another backslash:
//
//	stringx.SplitPhrases(`!print "hello world" \"x\"`)
//	// ["!print", "hello world", `"x"`]
//
// Script sources are turned into executable lines with SourceLines, which
// drops blank and comment lines but keeps the original line numbers for
// error messages:
//
//	for _, line := range stringx.SourceLines(src) {
//		fmt.Println(line.Number, line.Text)
//	}
package stringx
