// File: decimal.go
// Title: Decimal Arithmetic for the Calculator
// Description: Implements an exact decimal type on math/big.Rat with the
//              operations the expression evaluator needs: arithmetic,
//              truncated remainder, integer and real powers, rounding
//              and a float64 bridge for transcendental functions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with big.Rat arithmetic
// - 2026-10-19 v0.2.0: Calculator semantics (Mod, Pow on decimals, half-even
//                      rounding, float bridge, fixed display precision)

package mathx

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DisplayPlaces is the maximum number of fractional digits String prints.
const DisplayPlaces = 28

// MaxExactExponent bounds the integer exponents Pow evaluates exactly.
// Larger exponents go through float64.
const MaxExactExponent = 1024

var (
	// ErrDivisionByZero is returned by Divide, Mod and Pow for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrMathDomain is returned when an operation is undefined for its input.
	ErrMathDomain = errors.New("math domain error")

	// ErrMathRange is returned when a result does not fit a float64.
	ErrMathRange = errors.New("math range error")

	// ErrInvalidFormat is returned by NewDecimal for unparsable text.
	ErrInvalidFormat = errors.New("invalid decimal format")
)

// Decimal is an immutable exact decimal value. The zero value is 0.
type Decimal struct {
	value *big.Rat
}

// NewDecimal parses a decimal literal such as "12", "-0.5", ".25" or "3.".
// Fractions ("1/3") and exponents ("1e3") are accepted as well.
func NewDecimal(s string) (Decimal, error) {
	text := strings.TrimSpace(s)
	if text == "" || text == "." || text == "-." || text == "+." {
		return Decimal{}, ErrInvalidFormat
	}

	sign := ""
	if text[0] == '-' || text[0] == '+' {
		sign, text = text[:1], text[1:]
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}

	rat, ok := new(big.Rat).SetString(sign + text)
	if !ok {
		return Decimal{}, ErrInvalidFormat
	}
	return Decimal{value: rat}, nil
}

// MustNewDecimal is NewDecimal for constants; it panics on bad input.
func MustNewDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDecimalFromInt creates a Decimal from an integer.
func NewDecimalFromInt(i int64) Decimal {
	return Decimal{value: new(big.Rat).SetInt64(i)}
}

// NewDecimalFromFloat converts f through its shortest decimal representation,
// so 0.1 becomes exactly 1/10 rather than the nearest binary fraction.
func NewDecimalFromFloat(f float64) (Decimal, error) {
	if math.IsNaN(f) {
		return Decimal{}, ErrMathDomain
	}
	if math.IsInf(f, 0) {
		return Decimal{}, ErrMathRange
	}
	rat, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		return Decimal{}, ErrInvalidFormat
	}
	return Decimal{value: rat}, nil
}

// Zero returns 0.
func Zero() Decimal {
	return Decimal{value: new(big.Rat)}
}

// One returns 1.
func One() Decimal {
	return NewDecimalFromInt(1)
}

func (d Decimal) rat() *big.Rat {
	if d.value == nil {
		return new(big.Rat)
	}
	return d.value
}

// Add returns d + other.
func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Add(d.rat(), other.rat())}
}

// Subtract returns d - other.
func (d Decimal) Subtract(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Sub(d.rat(), other.rat())}
}

// Multiply returns d * other.
func (d Decimal) Multiply(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Mul(d.rat(), other.rat())}
}

// Divide returns d / other.
func (d Decimal) Divide(other Decimal) (Decimal, error) {
	if other.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	return Decimal{value: new(big.Rat).Quo(d.rat(), other.rat())}, nil
}

// Mod returns the truncated remainder d - other*trunc(d/other).
// The result carries the sign of d.
func (d Decimal) Mod(other Decimal) (Decimal, error) {
	quotient, err := d.Divide(other)
	if err != nil {
		return Decimal{}, err
	}
	return d.Subtract(other.Multiply(quotient.Truncate())), nil
}

// Pow returns d raised to exp. Integer exponents up to MaxExactExponent are
// computed exactly; anything else uses math.Pow.
func (d Decimal) Pow(exp Decimal) (Decimal, error) {
	if exp.IsInteger() {
		n := exp.rat().Num()
		if n.IsInt64() && n.Int64() >= -MaxExactExponent && n.Int64() <= MaxExactExponent {
			return d.powInt(n.Int64())
		}
	}

	result := math.Pow(d.Float64(), exp.Float64())
	if math.IsNaN(result) {
		return Decimal{}, ErrMathDomain
	}
	if math.IsInf(result, 0) {
		if d.IsZero() {
			return Decimal{}, ErrDivisionByZero
		}
		return Decimal{}, ErrMathRange
	}
	return NewDecimalFromFloat(result)
}

func (d Decimal) powInt(n int64) (Decimal, error) {
	if n == 0 {
		return One(), nil
	}
	base := d.rat()
	if n < 0 {
		if base.Sign() == 0 {
			return Decimal{}, ErrDivisionByZero
		}
		base = new(big.Rat).Inv(base)
		n = -n
	}
	exponent := big.NewInt(n)
	num := new(big.Int).Exp(base.Num(), exponent, nil)
	den := new(big.Int).Exp(base.Denom(), exponent, nil)
	return Decimal{value: new(big.Rat).SetFrac(num, den)}, nil
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return Decimal{value: new(big.Rat).Neg(d.rat())}
}

// Abs returns |d|.
func (d Decimal) Abs() Decimal {
	return Decimal{value: new(big.Rat).Abs(d.rat())}
}

// Floor returns the greatest integer not above d.
func (d Decimal) Floor() Decimal {
	r := d.rat()
	// Rat denominators are positive, so Euclidean division floors.
	q := new(big.Int).Div(r.Num(), r.Denom())
	return Decimal{value: new(big.Rat).SetInt(q)}
}

// Ceil returns the least integer not below d.
func (d Decimal) Ceil() Decimal {
	return d.Neg().Floor().Neg()
}

// Truncate drops the fractional part, rounding toward zero.
func (d Decimal) Truncate() Decimal {
	r := d.rat()
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return Decimal{value: new(big.Rat).SetInt(q)}
}

// RoundHalfEven rounds to the nearest integer, ties to even.
func (d Decimal) RoundHalfEven() Decimal {
	floor := d.Floor()
	frac := d.Subtract(floor)
	half := big.NewRat(1, 2)

	switch frac.rat().Cmp(half) {
	case -1:
		return floor
	case 1:
		return floor.Add(One())
	}
	if floor.rat().Num().Bit(0) == 0 {
		return floor
	}
	return floor.Add(One())
}

// IsZero reports whether d == 0.
func (d Decimal) IsZero() bool {
	return d.rat().Sign() == 0
}

// IsInteger reports whether d has no fractional part.
func (d Decimal) IsInteger() bool {
	return d.rat().IsInt()
}

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	return d.rat().Sign()
}

// Compare returns -1 if d < other, 0 if equal, +1 if d > other.
func (d Decimal) Compare(other Decimal) int {
	return d.rat().Cmp(other.rat())
}

// Equal reports whether d == other.
func (d Decimal) Equal(other Decimal) bool {
	return d.Compare(other) == 0
}

// GreaterThan reports whether d > other.
func (d Decimal) GreaterThan(other Decimal) bool {
	return d.Compare(other) > 0
}

// GreaterThanOrEqual reports whether d >= other.
func (d Decimal) GreaterThanOrEqual(other Decimal) bool {
	return d.Compare(other) >= 0
}

// LessThan reports whether d < other.
func (d Decimal) LessThan(other Decimal) bool {
	return d.Compare(other) < 0
}

// LessThanOrEqual reports whether d <= other.
func (d Decimal) LessThanOrEqual(other Decimal) bool {
	return d.Compare(other) <= 0
}

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	f, _ := d.rat().Float64()
	return f
}

// Int64 returns the integer part of d, truncated toward zero.
func (d Decimal) Int64() (int64, error) {
	q := d.Truncate().rat().Num()
	if !q.IsInt64() {
		return 0, ErrMathRange
	}
	return q.Int64(), nil
}

// String formats d with at most DisplayPlaces fractional digits and no
// trailing zeros. Integers print without a decimal point. A non-zero value
// that would round to zero prints in exponent form, such as 1e-30, which
// NewDecimal parses back.
func (d Decimal) String() string {
	r := d.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	s := r.FloatString(DisplayPlaces)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "0" || s == "-0" {
		return new(big.Float).SetPrec(256).SetRat(r).Text('g', DisplayPlaces)
	}
	return s
}

