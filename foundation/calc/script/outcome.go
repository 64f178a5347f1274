// File: outcome.go
// Title: Line Outcomes
// Description: The result of executing one line: continue, a recoverable
//              error, or termination with an exit code.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package script

import "fmt"

// OutcomeKind classifies an Outcome
type OutcomeKind int

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeRecoverable
	OutcomeFatal
)

// String returns a string representation of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeContinue:
		return "Continue"
	case OutcomeRecoverable:
		return "RecoverableError"
	case OutcomeFatal:
		return "FatalTermination"
	default:
		return "Unknown"
	}
}

// Exit codes used for fatal outcomes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitCanceled = 130
)

// Outcome is what executing a line produced. Messages have already been
// written to the error stream; they are kept for callers that render
// output themselves.
type Outcome struct {
	Kind     OutcomeKind
	Messages []string
	Code     int
}

// Continue is the outcome of a line that ran cleanly.
func Continue() Outcome {
	return Outcome{Kind: OutcomeContinue}
}

// Recoverable reports errors that do not end the run.
func Recoverable(messages ...string) Outcome {
	return Outcome{Kind: OutcomeRecoverable, Messages: messages}
}

// Fatal ends the run with code.
func Fatal(code int, messages ...string) Outcome {
	return Outcome{Kind: OutcomeFatal, Code: code, Messages: messages}
}

// IsFatal reports whether the run must stop.
func (o Outcome) IsFatal() bool {
	return o.Kind == OutcomeFatal
}

// IsError reports whether the line failed.
func (o Outcome) IsError() bool {
	return o.Kind == OutcomeRecoverable || (o.Kind == OutcomeFatal && len(o.Messages) > 0)
}

// String returns a string representation of the outcome
func (o Outcome) String() string {
	if o.Kind == OutcomeFatal {
		return fmt.Sprintf("%s(%d)", o.Kind, o.Code)
	}
	return o.Kind.String()
}
