// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-19 v0.2.0: Calculator codes, chain-aware lookups

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "Nothing to evaluate"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("Variable '%s' is not defined", "x")
	if err.Error() != "Variable 'x' is not defined" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("permission denied"),
			message: "write failed",
			wantMsg: "write failed: permission denied",
		},
		{
			name:    "wrap calculator error",
			err:     New("Division by zero").WithCode(CodeDivisionByZero),
			message: "line 3",
			wantMsg: "line 3: Division by zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}
			if wrapped == nil {
				t.Fatal("Wrap() returned nil")
			}
			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
			if inner, ok := tt.err.(*Error); ok {
				if wrapped.Code() != inner.Code() {
					t.Errorf("Code() = %v, want %v", wrapped.Code(), inner.Code())
				}
				if wrapped.Severity() != inner.Severity() {
					t.Errorf("Severity() = %v, want %v", wrapped.Severity(), inner.Severity())
				}
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	original := errors.New("root cause")
	middle := Wrap(original, "middle layer")
	top := Wrap(middle, "top layer")

	expected := "top layer: middle layer: root cause"
	if top.Error() != expected {
		t.Errorf("Error() = %q, want %q", top.Error(), expected)
	}
	if !errors.Is(top, middle) {
		t.Error("errors.Is() should find middle layer")
	}
	if !errors.Is(top, original) {
		t.Error("errors.Is() should find original error")
	}
	if rootCause := top.RootCause(); rootCause != original {
		t.Errorf("RootCause() = %v, want %v", rootCause, original)
	}
	if top.Message() != "top layer" {
		t.Errorf("Message() = %q, want %q", top.Message(), "top layer")
	}
}

func TestWithCode(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeDivisionByZero, SeverityLow},
		{CodeCallback, SeverityHigh},
		{CodeIO, SeverityMedium},
		{CodeConfigError, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("test error").WithCode(tt.code)
			if err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", err.Code(), tt.code)
			}
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWithCodeKeepsExplicitSeverity(t *testing.T) {
	err := New("test error").WithSeverity(SeverityCritical).WithCode(CodeLexical)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestWithDetails(t *testing.T) {
	err := New("test error").
		WithDetail("line", 4).
		WithDetails(map[string]interface{}{"command": "!map", "strict": true})

	details := err.Details()
	if len(details) != 3 {
		t.Errorf("Details() length = %d, want 3", len(details))
	}
	if details["line"] != 4 {
		t.Errorf("Details()[\"line\"] = %v, want 4", details["line"])
	}
	if details["command"] != "!map" {
		t.Errorf("Details()[\"command\"] = %v, want \"!map\"", details["command"])
	}

	details["line"] = 99
	if err.Details()["line"] != 4 {
		t.Error("Details() should return a copy")
	}
}

func TestWithContextAndOperation(t *testing.T) {
	err := New("test error").WithContext("script.sc").WithOperation("script.Run")

	if err.Context() != "script.sc" {
		t.Errorf("Context() = %q, want %q", err.Context(), "script.sc")
	}
	if err.Operation() != "script.Run" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "script.Run")
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New("test").WithCode(CodeLexical),
			code: CodeLexical,
			want: true,
		},
		{
			name: "different code",
			err:  New("test").WithCode(CodeLexical),
			code: CodeSyntax,
			want: false,
		},
		{
			name: "code deeper in the chain",
			err:  fmt.Errorf("failed to run: %w", New("test").WithCode(CodeCallback)),
			code: CodeCallback,
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			code: CodeLexical,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			code: CodeUnknown,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndSeverity(t *testing.T) {
	err := fmt.Errorf("context: %w", New("boom").WithCode(CodeStepLimit))

	if got := GetCode(err); got != CodeStepLimit {
		t.Errorf("GetCode() = %v, want %v", got, CodeStepLimit)
	}
	if got := GetSeverity(err); got != SeverityHigh {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityHigh)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, CodeUnknown)
	}
	if got := GetSeverity(errors.New("plain")); got != SeverityMedium {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityMedium)
	}
}

func TestString(t *testing.T) {
	err := New("Division by zero").
		WithCode(CodeDivisionByZero).
		WithOperation("expr.Evaluate").
		WithDetail("position", 3).
		WithDetail("line", "1/0")

	s := err.String()
	for _, want := range []string{
		"Error: Division by zero",
		"Code: DIVISION_BY_ZERO",
		"Severity: low",
		"Operation: expr.Evaluate",
		"Details: {line=1/0, position=3}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("disk full"), "write failed").
		WithCode(CodeIO).
		WithOperation("persist.Write").
		WithDetail("status", 2)

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("json.Marshal() error = %v", marshalErr)
	}

	var decoded map[string]interface{}
	if unmarshalErr := json.Unmarshal(data, &decoded); unmarshalErr != nil {
		t.Fatalf("json.Unmarshal() error = %v", unmarshalErr)
	}

	if decoded["message"] != "write failed" {
		t.Errorf("message = %v, want %q", decoded["message"], "write failed")
	}
	if decoded["code"] != "IO" {
		t.Errorf("code = %v, want %q", decoded["code"], "IO")
	}
	if decoded["cause"] != "disk full" {
		t.Errorf("cause = %v, want %q", decoded["cause"], "disk full")
	}
	if decoded["operation"] != "persist.Write" {
		t.Errorf("operation = %v, want %q", decoded["operation"], "persist.Write")
	}
	if _, ok := decoded["stack_trace"]; !ok {
		t.Error("stack_trace missing from JSON")
	}
}

func TestStackTraceCapturesCaller(t *testing.T) {
	err := New("test")
	frames := err.StackTrace()
	if len(frames) == 0 {
		t.Fatal("StackTrace() is empty")
	}
	if !strings.Contains(frames[0].Function, "TestStackTraceCapturesCaller") {
		t.Errorf("first frame = %q, want the calling test", frames[0].Function)
	}
}
