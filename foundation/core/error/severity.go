// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps them to
//              log levels and the script interpreter uses them to tell
//              recoverable line errors from fatal ones.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severities for the calculator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a bad input line; the session carries on.
	SeverityLow Severity = iota

	// SeverityMedium affects a single command but leaves state intact.
	SeverityMedium

	// SeverityHigh ends a script run.
	SeverityHigh

	// SeverityCritical leaves the program unable to start or continue.
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// IsFatal reports whether an error of this severity ends a script run.
func (s Severity) IsFatal() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal, CodeDatabaseError, CodeConfigError, CodeInvalidConfig:
		return SeverityCritical

	case CodeCallback, CodeStepLimit, CodeCanceled, CodeGrammar:
		return SeverityHigh

	case CodeIO, CodePermissionDenied, CodeSerialization, CodeNotFound:
		return SeverityMedium

	case CodeLexical, CodeSyntax, CodeEvaluation, CodeDivisionByZero, CodeMathDomain,
		CodeUndefined, CodeUnknownCommand, CodeInvalidInput, CodeValidationFailed:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
