// File: token.go
// Title: Expression Tokens
// Description: Token and token error types produced by the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package expr

import (
	"fmt"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// TokenKind represents the kind of a lexical token
type TokenKind int

const (
	TokenNumber     TokenKind = iota // 12, .5, substituted variables, A
	TokenIdentifier                  // reserved for callers building tokens by hand
	TokenConst                       // pi, e
	TokenVar                         // x before assignment or when undefined
	TokenFunction                    // sqrt, floor
	TokenBinaryOp                    // + - * / % ^ comparisons && ||
	TokenAssignment                  // =
	TokenOpenParen                   // (
	TokenCloseParen                  // )
	TokenBad                         // carries a TokenError
)

// String returns a string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "Number"
	case TokenIdentifier:
		return "Identifier"
	case TokenConst:
		return "Const"
	case TokenVar:
		return "Variable"
	case TokenFunction:
		return "Function"
	case TokenBinaryOp:
		return "BinaryOp"
	case TokenAssignment:
		return "Assignment"
	case TokenOpenParen:
		return "OpenParen"
	case TokenCloseParen:
		return "CloseParen"
	case TokenBad:
		return "Bad"
	default:
		return "Unknown"
	}
}

// TokenErrorKind classifies lexical errors
type TokenErrorKind int

const (
	UnknownChar TokenErrorKind = iota
	MultipleDecimalPoints
)

// TokenError describes why a token is Bad
type TokenError struct {
	Kind    TokenErrorKind
	Message string
}

// Token is one lexeme with its kind and 0-based rune position. Number and
// Const tokens carry their exact value in Value.
type Token struct {
	Lexeme   string
	Kind     TokenKind
	Position int
	Err      *TokenError
	Value    *mdwmathx.Decimal
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Kind == TokenBad {
		return fmt.Sprintf("Bad(%s)", t.Err.Message)
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
}

// IsOperand reports whether the token can stand on either side of a binary
// operator on its own.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case TokenNumber, TokenConst, TokenVar, TokenIdentifier:
		return true
	}
	return false
}

func numberToken(value mdwmathx.Decimal, position int) Token {
	return Token{Lexeme: value.String(), Kind: TokenNumber, Position: position, Value: &value}
}

func badToken(kind TokenErrorKind, message string, position int) Token {
	return Token{Kind: TokenBad, Position: position, Err: &TokenError{Kind: kind, Message: message}}
}

// FormatTokenError renders a lexical error as
// "TOKEN ERROR: char N. message.".
func FormatTokenError(t Token) string {
	return fmt.Sprintf("TOKEN ERROR: char %d. %s.", t.Position+1, t.Err.Message)
}
