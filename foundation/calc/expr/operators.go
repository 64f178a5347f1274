// File: operators.go
// Title: Binary Operators
// Description: The binary operator table with precedences, preconditions
//              and the comparators shared with the command grammar.
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
	"sort"
	"unicode"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// Operator precedences, higher binds tighter.
const (
	PrecedenceNone           = 0
	PrecedenceAssignment     = 1
	PrecedenceOr             = 3
	PrecedenceAnd            = 4
	PrecedenceComparison     = 5
	PrecedenceAdditive       = 10
	PrecedenceMultiplicative = 20
	PrecedenceExponent       = 30
	PrecedenceFunction       = 50
)

// BinaryOperator is an infix operator. Precondition, when set, runs before
// Apply; any message it returns is reported and Apply is not called.
type BinaryOperator struct {
	Symbol       string
	Precedence   int
	Apply        func(a, b mdwmathx.Decimal) (mdwmathx.Decimal, error)
	Precondition func(a, b mdwmathx.Decimal) []string
}

// Comparator is a comparison operator usable outside expressions.
type Comparator struct {
	Symbol  string
	Compare func(a, b mdwmathx.Decimal) bool
}

var comparators = map[string]func(a, b mdwmathx.Decimal) bool{
	"==": mdwmathx.Decimal.Equal,
	"!=": func(a, b mdwmathx.Decimal) bool { return !a.Equal(b) },
	">=": mdwmathx.Decimal.GreaterThanOrEqual,
	"<=": mdwmathx.Decimal.LessThanOrEqual,
	">":  mdwmathx.Decimal.GreaterThan,
	"<":  mdwmathx.Decimal.LessThan,
}

var operators = buildOperators()

var maxSymbolLength int

func init() {
	if err := validateOperators(operators); err != nil {
		panic(err)
	}
	for symbol := range operators {
		if len(symbol) > maxSymbolLength {
			maxSymbolLength = len(symbol)
		}
	}
}

func buildOperators() map[string]*BinaryOperator {
	table := map[string]*BinaryOperator{
		"+": {Symbol: "+", Precedence: PrecedenceAdditive, Apply: exact(mdwmathx.Decimal.Add)},
		"-": {Symbol: "-", Precedence: PrecedenceAdditive, Apply: exact(mdwmathx.Decimal.Subtract)},
		"*": {Symbol: "*", Precedence: PrecedenceMultiplicative, Apply: exact(mdwmathx.Decimal.Multiply)},
		"/": {
			Symbol:       "/",
			Precedence:   PrecedenceMultiplicative,
			Apply:        mdwmathx.Decimal.Divide,
			Precondition: nonZeroDivisor("Division by zero"),
		},
		"%": {
			Symbol:       "%",
			Precedence:   PrecedenceMultiplicative,
			Apply:        mdwmathx.Decimal.Mod,
			Precondition: nonZeroDivisor("Modulo by zero"),
		},
		"^": {Symbol: "^", Precedence: PrecedenceExponent, Apply: mdwmathx.Decimal.Pow},
		"&&": {Symbol: "&&", Precedence: PrecedenceAnd, Apply: logical(func(a, b bool) bool { return a && b })},
		"||": {Symbol: "||", Precedence: PrecedenceOr, Apply: logical(func(a, b bool) bool { return a || b })},
	}
	for symbol, compare := range comparators {
		compare := compare
		table[symbol] = &BinaryOperator{
			Symbol:     symbol,
			Precedence: PrecedenceComparison,
			Apply: func(a, b mdwmathx.Decimal) (mdwmathx.Decimal, error) {
				return truth(compare(a, b)), nil
			},
		}
	}
	return table
}

func exact(fn func(a, b mdwmathx.Decimal) mdwmathx.Decimal) func(a, b mdwmathx.Decimal) (mdwmathx.Decimal, error) {
	return func(a, b mdwmathx.Decimal) (mdwmathx.Decimal, error) {
		return fn(a, b), nil
	}
}

func logical(fn func(a, b bool) bool) func(a, b mdwmathx.Decimal) (mdwmathx.Decimal, error) {
	return func(a, b mdwmathx.Decimal) (mdwmathx.Decimal, error) {
		return truth(fn(!a.IsZero(), !b.IsZero())), nil
	}
}

func nonZeroDivisor(message string) func(a, b mdwmathx.Decimal) []string {
	return func(_, b mdwmathx.Decimal) []string {
		if b.IsZero() {
			return []string{message}
		}
		return nil
	}
}

func truth(b bool) mdwmathx.Decimal {
	if b {
		return mdwmathx.One()
	}
	return mdwmathx.Zero()
}

// validateOperators checks that every symbol is non-empty punctuation,
// matches its key, and binds tighter than assignment.
func validateOperators(table map[string]*BinaryOperator) error {
	for key, op := range table {
		if op == nil {
			return fmt.Errorf("operator %q has no definition", key)
		}
		if op.Symbol != key {
			return fmt.Errorf("operator %q registered under key %q", op.Symbol, key)
		}
		if op.Symbol == "" {
			return fmt.Errorf("operator symbol cannot be empty")
		}
		for _, r := range op.Symbol {
			if !isOperatorRune(r) {
				return fmt.Errorf("operator %q contains non-punctuation %q", op.Symbol, r)
			}
		}
		if op.Apply == nil {
			return fmt.Errorf("operator %q has no apply function", op.Symbol)
		}
		if op.Precedence <= PrecedenceAssignment || op.Precedence >= PrecedenceFunction {
			return fmt.Errorf("operator %q has precedence %d outside (%d, %d)",
				op.Symbol, op.Precedence, PrecedenceAssignment, PrecedenceFunction)
		}
	}
	return nil
}

// isOperatorRune reports whether r may appear in an operator symbol.
func isOperatorRune(r rune) bool {
	switch r {
	case '(', ')', '.', '_':
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// LookupOperator returns the binary operator for symbol.
func LookupOperator(symbol string) (*BinaryOperator, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// OperatorSymbols returns all binary operator symbols, sorted.
func OperatorSymbols() []string {
	symbols := make([]string, 0, len(operators))
	for symbol := range operators {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// LookupComparator returns the comparator for one of == != >= <= > <.
func LookupComparator(symbol string) (Comparator, bool) {
	compare, ok := comparators[symbol]
	if !ok {
		return Comparator{}, false
	}
	return Comparator{Symbol: symbol, Compare: compare}, true
}

// ComparatorSymbols returns the comparison symbols, sorted.
func ComparatorSymbols() []string {
	symbols := make([]string, 0, len(comparators))
	for symbol := range comparators {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
