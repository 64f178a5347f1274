// File: lexer.go
// Title: Expression Lexical Analyzer
// Description: Converts an arithmetic expression into tokens. Identifiers
//              are classified as constants, functions, the previous answer
//              or variables; punctuation runs are matched against the
//              longest registered operator symbol. Defined variables are
//              substituted by their values unless they are assigned to.
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
	"strings"
	"unicode"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// PreviousAnswerName is the identifier that stands for the previous answer.
const PreviousAnswerName = "A"

// Env is the variable environment an expression reads and assigns.
type Env interface {
	Lookup(name string) (mdwmathx.Decimal, bool)
	Assign(name string, value mdwmathx.Decimal)
	PreviousAnswer() mdwmathx.Decimal
}

// Lexer performs lexical analysis of one expression
type Lexer struct {
	input    []rune
	position int
	env      Env
}

// NewLexer creates a new lexer for the given input. env may be nil, in
// which case A is 0 and no variable is substituted.
func NewLexer(input string, env Env) *Lexer {
	return &Lexer{input: []rune(input), env: env}
}

// Lex tokenizes input against env.
func Lex(input string, env Env) []Token {
	return NewLexer(input, env).Tokenize()
}

// Tokenize scans the whole input and applies variable substitution.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		l.skipWhitespace()
		if l.position >= len(l.input) {
			break
		}
		tokens = append(tokens, l.nextToken())
	}
	return l.substitute(tokens)
}

func (l *Lexer) nextToken() Token {
	start := l.position
	ch := l.input[l.position]

	switch {
	case isDigit(ch) || ch == '.':
		return l.readNumber()
	case isIdentStart(ch):
		return l.readIdentifier()
	case ch == '(':
		l.position++
		return Token{Lexeme: "(", Kind: TokenOpenParen, Position: start}
	case ch == ')':
		l.position++
		return Token{Lexeme: ")", Kind: TokenCloseParen, Position: start}
	case isOperatorRune(ch):
		return l.readOperator()
	default:
		l.position++
		return badToken(UnknownChar, unknownCharMessage(ch), start)
	}
}

func (l *Lexer) readNumber() Token {
	start := l.position
	points := 0
	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch == '.' {
			points++
		} else if !isDigit(ch) {
			break
		}
		l.position++
	}
	lexeme := string(l.input[start:l.position])

	if points > 1 {
		return badToken(MultipleDecimalPoints, "Number cannot have more than one decimal point", start)
	}
	value, err := mdwmathx.NewDecimal(lexeme)
	if err != nil {
		return badToken(UnknownChar, unknownCharMessage('.'), start)
	}
	return Token{Lexeme: lexeme, Kind: TokenNumber, Position: start, Value: &value}
}

func (l *Lexer) readIdentifier() Token {
	start := l.position
	for l.position < len(l.input) && isIdentPart(l.input[l.position]) {
		l.position++
	}
	lexeme := string(l.input[start:l.position])

	if value, ok := LookupConstant(lexeme); ok {
		return Token{Lexeme: lexeme, Kind: TokenConst, Position: start, Value: &value}
	}
	if _, ok := LookupFunction(lexeme); ok {
		return Token{Lexeme: lexeme, Kind: TokenFunction, Position: start}
	}
	if lexeme == PreviousAnswerName {
		previous := mdwmathx.Zero()
		if l.env != nil {
			previous = l.env.PreviousAnswer()
		}
		return numberToken(previous, start)
	}
	return Token{Lexeme: lexeme, Kind: TokenVar, Position: start}
}

// readOperator matches the longest operator symbol at the current position.
// A lone '=' is assignment; anything else is an unknown character.
func (l *Lexer) readOperator() Token {
	start := l.position
	end := start
	for end < len(l.input) && isOperatorRune(l.input[end]) {
		end++
	}
	run := l.input[start:end]

	for n := min(len(run), maxSymbolLength); n > 0; n-- {
		symbol := string(run[:n])
		if _, ok := operators[symbol]; ok {
			l.position += n
			return Token{Lexeme: symbol, Kind: TokenBinaryOp, Position: start}
		}
	}

	l.position++
	if run[0] == '=' {
		return Token{Lexeme: "=", Kind: TokenAssignment, Position: start}
	}
	return badToken(UnknownChar, unknownCharMessage(run[0]), start)
}

// substitute replaces defined variables by their values, except where the
// variable is the target of an assignment.
func (l *Lexer) substitute(tokens []Token) []Token {
	if l.env == nil {
		return tokens
	}
	for i, tok := range tokens {
		if tok.Kind != TokenVar {
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Kind == TokenAssignment {
			continue
		}
		if value, ok := l.env.Lookup(tok.Lexeme); ok {
			tokens[i] = numberToken(value, tok.Position)
		}
	}
	return tokens
}

func (l *Lexer) skipWhitespace() {
	for l.position < len(l.input) && unicode.IsSpace(l.input[l.position]) {
		l.position++
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func unknownCharMessage(ch rune) string {
	if unicode.IsPrint(ch) {
		return fmt.Sprintf("Unknown char '%c'", ch)
	}
	return fmt.Sprintf("Unknown char %d", ch)
}

// HasErrors reports whether any token is Bad.
func HasErrors(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind == TokenBad {
			return true
		}
	}
	return false
}

// TokenErrors renders every Bad token with FormatTokenError.
func TokenErrors(tokens []Token) []string {
	var messages []string
	for _, t := range tokens {
		if t.Kind == TokenBad {
			messages = append(messages, FormatTokenError(t))
		}
	}
	return messages
}

// Lexemes joins the token lexemes with single spaces.
func Lexemes(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Lexeme
	}
	return strings.Join(parts, " ")
}
