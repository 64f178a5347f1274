// File: scalar.go
// Title: Scalar Values
// Description: The tagged union of values that flow through the evaluator
//              stack and the command grammar.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package expr

import (
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// ScalarKind selects the populated field of a Scalar
type ScalarKind int

const (
	ScalarNone ScalarKind = iota
	ScalarNumber
	ScalarName
	ScalarComparator
	ScalarText
)

// String returns a string representation of the scalar kind
func (k ScalarKind) String() string {
	switch k {
	case ScalarNone:
		return "none"
	case ScalarNumber:
		return "number"
	case ScalarName:
		return "name"
	case ScalarComparator:
		return "comparator"
	case ScalarText:
		return "text"
	default:
		return "unknown"
	}
}

// Scalar is a number, a bare name, a comparator, a piece of text, or
// nothing. Only the field matching Kind is meaningful.
type Scalar struct {
	Kind    ScalarKind
	Number  mdwmathx.Decimal
	Name    string
	Compare Comparator
	Text    string
}

// NoneScalar is the placeholder for an absent optional value.
func NoneScalar() Scalar {
	return Scalar{Kind: ScalarNone}
}

// NumberScalar wraps a decimal.
func NumberScalar(v mdwmathx.Decimal) Scalar {
	return Scalar{Kind: ScalarNumber, Number: v}
}

// NameScalar wraps a variable or iterator name.
func NameScalar(name string) Scalar {
	return Scalar{Kind: ScalarName, Name: name}
}

// ComparatorScalar wraps a comparator.
func ComparatorScalar(c Comparator) Scalar {
	return Scalar{Kind: ScalarComparator, Compare: c}
}

// TextScalar wraps text.
func TextScalar(text string) Scalar {
	return Scalar{Kind: ScalarText, Text: text}
}

// String returns the display form of the scalar
func (s Scalar) String() string {
	switch s.Kind {
	case ScalarNumber:
		return s.Number.String()
	case ScalarName:
		return s.Name
	case ScalarComparator:
		return s.Compare.Symbol
	case ScalarText:
		return s.Text
	default:
		return ""
	}
}
