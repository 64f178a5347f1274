// File: functions.go
// Title: Unary Functions and Constants
// Description: Named unary functions and constants known to the lexer.
//              Rounding functions are exact; the rest go through float64.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package expr

import (
	"math"
	"sort"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// Numeric failures of unary functions.
var (
	ErrFunctionDivisionByZero = mdwmathx.ErrDivisionByZero
	ErrMathDomain             = mdwmathx.ErrMathDomain
	ErrMathRange              = mdwmathx.ErrMathRange
)

// UnaryFunction maps one decimal to another.
type UnaryFunction func(x mdwmathx.Decimal) (mdwmathx.Decimal, error)

var functions = map[string]UnaryFunction{
	"negate": exactUnary(mdwmathx.Decimal.Neg),
	"ceil":   exactUnary(mdwmathx.Decimal.Ceil),
	"floor":  exactUnary(mdwmathx.Decimal.Floor),
	"round":  exactUnary(mdwmathx.Decimal.RoundHalfEven),
	"sqrt": viaFloat(func(x float64) (float64, error) {
		if x < 0 {
			return 0, ErrMathDomain
		}
		return math.Sqrt(x), nil
	}),
	"log10": viaFloat(logarithm(math.Log10)),
	"log2":  viaFloat(logarithm(math.Log2)),
	"cos":   viaFloat(plain(math.Cos)),
	"sin":   viaFloat(plain(math.Sin)),
	"tan":   viaFloat(plain(math.Tan)),
	"cosec": viaFloat(reciprocal(math.Sin)),
	"sec":   viaFloat(reciprocal(math.Cos)),
	"cot":   viaFloat(reciprocal(math.Tan)),
	"acos":  viaFloat(unitDomain(math.Acos)),
	"asin":  viaFloat(unitDomain(math.Asin)),
	"atan":  viaFloat(plain(math.Atan)),
}

var constants = map[string]mdwmathx.Decimal{
	"pi":      fromFloat(math.Pi),
	"e":       fromFloat(math.E),
	"deg2rad": fromFloat(math.Pi / 180),
	"rad2deg": fromFloat(180 / math.Pi),
}

func fromFloat(f float64) mdwmathx.Decimal {
	d, err := mdwmathx.NewDecimalFromFloat(f)
	if err != nil {
		panic(err)
	}
	return d
}

func exactUnary(fn func(mdwmathx.Decimal) mdwmathx.Decimal) UnaryFunction {
	return func(x mdwmathx.Decimal) (mdwmathx.Decimal, error) {
		return fn(x), nil
	}
}

// viaFloat lifts a float64 function, turning NaN into a domain error and
// infinities into a range error.
func viaFloat(fn func(float64) (float64, error)) UnaryFunction {
	return func(x mdwmathx.Decimal) (mdwmathx.Decimal, error) {
		result, err := fn(x.Float64())
		if err != nil {
			return mdwmathx.Decimal{}, err
		}
		return mdwmathx.NewDecimalFromFloat(result)
	}
}

func plain(fn func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		return fn(x), nil
	}
}

func logarithm(fn func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if x <= 0 {
			return 0, ErrMathDomain
		}
		return fn(x), nil
	}
}

func reciprocal(fn func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		d := fn(x)
		if d == 0 {
			return 0, ErrFunctionDivisionByZero
		}
		return 1 / d, nil
	}
}

func unitDomain(fn func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, ErrMathDomain
		}
		return fn(x), nil
	}
}

// LookupFunction returns the unary function called name.
func LookupFunction(name string) (UnaryFunction, bool) {
	fn, ok := functions[name]
	return fn, ok
}

// FunctionNames returns the known function names, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupConstant returns the value of a named constant.
func LookupConstant(name string) (mdwmathx.Decimal, bool) {
	v, ok := constants[name]
	return v, ok
}

// ConstantNames returns the known constant names, sorted.
func ConstantNames() []string {
	names := make([]string, 0, len(constants))
	for name := range constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
