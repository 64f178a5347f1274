// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of the
//              calculator: lexical, syntactic and evaluation errors, grammar
//              and command errors, callback and I/O failures and configuration
//              problems.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Calculator error taxonomy, exit code mapping

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCanceled     Code = "CANCELED"

	// Expression pipeline
	CodeLexical        Code = "LEXICAL"
	CodeSyntax         Code = "SYNTAX"
	CodeEvaluation     Code = "EVALUATION"
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"
	CodeMathDomain     Code = "MATH_DOMAIN"

	// Commands and scripts
	CodeGrammar        Code = "GRAMMAR"
	CodeUndefined      Code = "UNDEFINED"
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"
	CodeCallback       Code = "CALLBACK"
	CodeStepLimit      Code = "STEP_LIMIT"

	// Files and storage
	CodeIO               Code = "IO"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeSerialization    Code = "SERIALIZATION"
	CodeDatabaseError    Code = "DATABASE_ERROR"

	// Configuration
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeValidationFailed Code = "VALIDATION_FAILED"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeCanceled,
		CodeLexical, CodeSyntax, CodeEvaluation, CodeDivisionByZero, CodeMathDomain,
		CodeGrammar, CodeUndefined, CodeUnknownCommand, CodeCallback, CodeStepLimit,
		CodeIO, CodePermissionDenied, CodeSerialization, CodeDatabaseError,
		CodeConfigError, CodeInvalidConfig, CodeValidationFailed:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical:
		return "lexical"
	case CodeSyntax:
		return "syntax"
	case CodeEvaluation, CodeDivisionByZero, CodeMathDomain:
		return "evaluation"
	case CodeGrammar, CodeUndefined, CodeUnknownCommand:
		return "command"
	case CodeCallback, CodeStepLimit:
		return "script"
	case CodeIO, CodePermissionDenied, CodeSerialization, CodeNotFound, CodeDatabaseError:
		return "io"
	case CodeConfigError, CodeInvalidConfig, CodeValidationFailed:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status for a run that ended with this code.
func (c Code) ExitCode() int {
	switch c {
	case CodeCanceled:
		return 130
	case CodeConfigError, CodeInvalidConfig, CodeValidationFailed:
		return 2
	default:
		return 1
	}
}
