// File: leaves.go
// Title: Leaf Matchers
// Description: Matchers for the grammar leaves. Each consumes exactly one
//              phrase.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import (
	"fmt"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
)

// ParseLiteral parses phrase as a number literal.
func ParseLiteral(phrase string) (mdwmathx.Decimal, bool) {
	if !isLiteral(phrase) {
		return mdwmathx.Decimal{}, false
	}
	value, err := mdwmathx.NewDecimal(phrase)
	if err != nil {
		return mdwmathx.Decimal{}, false
	}
	return value, true
}

// isLiteral reports whether s is an optional minus, digits and at most one
// decimal point, with at least one digit.
func isLiteral(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	digits, point := false, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' && !point:
			point = true
		default:
			return false
		}
	}
	return digits
}

func matchLiteralNumber(phrase string) MatchResult {
	value, ok := ParseLiteral(phrase)
	if !ok {
		return failure(fmt.Sprintf("'%s' is not a number", phrase))
	}
	return success([]mdwexpr.Scalar{mdwexpr.NumberScalar(value)}, []string{TagLiteral}, 1)
}

func matchVariable(phrase string, direction Direction, convert bool, env Env) MatchResult {
	if err := mdwstringx.ValidateIdentifier(phrase); err != nil {
		return failure(err.Error())
	}
	if direction == Out {
		return success([]mdwexpr.Scalar{mdwexpr.NameScalar(phrase)}, []string{TagVariable}, 1)
	}

	value, ok := env.Lookup(phrase)
	if !ok {
		return failure(fmt.Sprintf("variable '%s' is not defined", phrase))
	}
	if convert && direction == In {
		return success([]mdwexpr.Scalar{mdwexpr.NumberScalar(value)}, []string{TagVariable}, 1)
	}
	return success([]mdwexpr.Scalar{mdwexpr.NameScalar(phrase)}, []string{TagVariable}, 1)
}

func matchIterator(phrase string, direction Direction, env Env) MatchResult {
	if err := mdwstringx.ValidateIdentifier(phrase); err != nil {
		return failure(err.Error())
	}
	if direction != Out {
		if _, ok := env.Iterator(phrase); !ok {
			return failure(fmt.Sprintf("iterator '%s' is not defined", phrase))
		}
	}
	return success([]mdwexpr.Scalar{mdwexpr.NameScalar(phrase)}, []string{TagIterator}, 1)
}

func matchCmpOperator(phrase string) MatchResult {
	cmp, ok := mdwexpr.LookupComparator(phrase)
	if !ok {
		return failure(fmt.Sprintf("unrecognised comparison operator '%s'", phrase))
	}
	return success([]mdwexpr.Scalar{mdwexpr.ComparatorScalar(cmp)}, []string{TagOperator}, 1)
}

// matchExpression only lexes; evaluation belongs to the callback.
func matchExpression(phrase string, env Env) MatchResult {
	tokens := mdwexpr.Lex(phrase, env)
	if len(tokens) == 0 {
		return failure("expected expression")
	}
	if mdwexpr.HasErrors(tokens) {
		return failure(mdwexpr.TokenErrors(tokens)...)
	}
	return success([]mdwexpr.Scalar{mdwexpr.TextScalar(phrase)}, []string{TagExpression}, 1)
}

func matchText(phrase, exact string) MatchResult {
	if exact == "" {
		return success([]mdwexpr.Scalar{mdwexpr.TextScalar(phrase)}, []string{TagText}, 1)
	}
	if phrase != exact {
		return failure(fmt.Sprintf("expected '%s', got '%s'", exact, phrase))
	}
	return success([]mdwexpr.Scalar{mdwexpr.TextScalar(phrase)}, []string{exact}, 1)
}
