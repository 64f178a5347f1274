// File: decimal_test.go
// Title: Unit Tests for Decimal Arithmetic
// Description: Unit tests for parsing, formatting, arithmetic, powers and
//              rounding of the Decimal type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test implementation for decimal arithmetic
// - 2026-10-19 v0.2.0: Tests for calculator semantics

package mathx

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{"positive integer", "123", false, "123"},
		{"negative integer", "-456", false, "-456"},
		{"positive decimal", "123.45", false, "123.45"},
		{"zero decimal", "0.00", false, "0"},
		{"leading zeros", "000123.450", false, "123.45"},
		{"leading point", ".5", false, "0.5"},
		{"trailing point", "3.", false, "3"},
		{"fraction", "1/2", false, "0.5"},
		{"invalid format", "abc", true, ""},
		{"empty string", "", true, ""},
		{"lone point", ".", true, ""},
		{"multiple decimals", "12.34.56", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewDecimal(%q) expected error, got %v", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDecimal(%q) unexpected error: %v", tt.input, err)
			}
			if result.String() != tt.want {
				t.Errorf("NewDecimal(%q) = %q, want %q", tt.input, result.String(), tt.want)
			}
		})
	}
}

func TestDecimal_ExactLiterals(t *testing.T) {
	sum := MustNewDecimal("0.1").Add(MustNewDecimal("0.2"))
	if !sum.Equal(MustNewDecimal("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want exactly 0.3", sum)
	}
}

func TestDecimal_Arithmetic(t *testing.T) {
	a := MustNewDecimal("10")
	b := MustNewDecimal("2.5")

	if got := a.Subtract(b).String(); got != "7.5" {
		t.Errorf("Subtract() = %s, want 7.5", got)
	}
	if got := a.Multiply(b).String(); got != "25" {
		t.Errorf("Multiply() = %s, want 25", got)
	}
	q, err := a.Divide(b)
	if err != nil || q.String() != "4" {
		t.Errorf("Divide() = %v, %v, want 4, nil", q, err)
	}
	if got := a.Neg().String(); got != "-10" {
		t.Errorf("Neg() = %s, want -10", got)
	}
	if got := MustNewDecimal("-3.5").Abs().String(); got != "3.5" {
		t.Errorf("Abs() = %s, want 3.5", got)
	}
}

func TestDecimal_DivideByZero(t *testing.T) {
	if _, err := One().Divide(Zero()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Divide(0) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := One().Mod(Zero()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Mod(0) error = %v, want ErrDivisionByZero", err)
	}
}

func TestDecimal_String(t *testing.T) {
	third, _ := One().Divide(NewDecimalFromInt(3))
	twoThirds, _ := NewDecimalFromInt(2).Divide(NewDecimalFromInt(3))

	tests := []struct {
		name  string
		value Decimal
		want  string
	}{
		{"zero value", Decimal{}, "0"},
		{"integer", NewDecimalFromInt(-42), "-42"},
		{"one third", third, "0." + strings.Repeat("3", DisplayPlaces)},
		{"two thirds rounds last digit", twoThirds, "0." + strings.Repeat("6", DisplayPlaces-1) + "7"},
		{"tiny negative uses exponent", MustNewDecimal("-0." + strings.Repeat("0", DisplayPlaces) + "1"), "-1e-29"},
		{"tiny positive uses exponent", MustNewDecimal("1e-30"), "1e-30"},
		{"tiny fraction keeps digits", MustNewDecimal("1.5e-30"), "1.5e-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecimal_StringRoundTrip(t *testing.T) {
	for _, text := range []string{"1e-30", "-2.25e-40", "0.125", "123456789"} {
		d := MustNewDecimal(text)
		back, err := NewDecimal(d.String())
		if err != nil {
			t.Fatalf("NewDecimal(%q) error = %v", d.String(), err)
		}
		if back.Compare(d) != 0 {
			t.Errorf("round trip of %s gave %s", text, back)
		}
	}
}

func TestDecimal_Mod(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"7", "3", "1"},
		{"-7", "3", "-1"},
		{"7", "-3", "1"},
		{"5.5", "2", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"%"+tt.b, func(t *testing.T) {
			got, err := MustNewDecimal(tt.a).Mod(MustNewDecimal(tt.b))
			if err != nil {
				t.Fatalf("Mod() unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Mod() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecimal_Pow(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		exp     string
		want    string
		wantErr error
	}{
		{"integer power", "2", "10", "1024", nil},
		{"negative exponent", "2", "-2", "0.25", nil},
		{"negative base", "-3", "2", "9", nil},
		{"zero to zero", "0", "0", "1", nil},
		{"zero to negative", "0", "-1", "", ErrDivisionByZero},
		{"square root via float", "4", "0.5", "2", nil},
		{"negative base fractional exponent", "-4", "0.5", "", ErrMathDomain},
		{"overflow", "2", "2000", "", ErrMathRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustNewDecimal(tt.base).Pow(MustNewDecimal(tt.exp))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Pow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Pow() unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Pow() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecimal_PowExactLarge(t *testing.T) {
	got, err := NewDecimalFromInt(10).Pow(NewDecimalFromInt(400))
	if err != nil {
		t.Fatalf("Pow() unexpected error: %v", err)
	}
	want := "1" + strings.Repeat("0", 400)
	if got.String() != want {
		t.Errorf("10^400 has %d digits, want %d", len(got.String()), len(want))
	}
}

func TestDecimal_Rounding(t *testing.T) {
	tests := []struct {
		input            string
		floor, ceil, rnd string
	}{
		{"2.5", "2", "3", "2"},
		{"3.5", "3", "4", "4"},
		{"-2.5", "-3", "-2", "-2"},
		{"2.4", "2", "3", "2"},
		{"-2.6", "-3", "-2", "-3"},
		{"7", "7", "7", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := MustNewDecimal(tt.input)
			if got := d.Floor().String(); got != tt.floor {
				t.Errorf("Floor() = %s, want %s", got, tt.floor)
			}
			if got := d.Ceil().String(); got != tt.ceil {
				t.Errorf("Ceil() = %s, want %s", got, tt.ceil)
			}
			if got := d.RoundHalfEven().String(); got != tt.rnd {
				t.Errorf("RoundHalfEven() = %s, want %s", got, tt.rnd)
			}
		})
	}
}

func TestNewDecimalFromFloat(t *testing.T) {
	d, err := NewDecimalFromFloat(0.1)
	if err != nil || d.String() != "0.1" {
		t.Errorf("NewDecimalFromFloat(0.1) = %v, %v, want 0.1", d, err)
	}

	d, err = NewDecimalFromFloat(math.Sqrt(2))
	if err != nil || d.String() != "1.4142135623730951" {
		t.Errorf("NewDecimalFromFloat(sqrt 2) = %v, %v", d, err)
	}

	if _, err := NewDecimalFromFloat(math.NaN()); !errors.Is(err, ErrMathDomain) {
		t.Errorf("NaN error = %v, want ErrMathDomain", err)
	}
	if _, err := NewDecimalFromFloat(math.Inf(1)); !errors.Is(err, ErrMathRange) {
		t.Errorf("Inf error = %v, want ErrMathRange", err)
	}
}

func TestDecimal_Int64(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"7.9", 7},
		{"-7.9", -7},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := MustNewDecimal(tt.input).Int64()
		if err != nil || got != tt.want {
			t.Errorf("Int64(%s) = %d, %v, want %d", tt.input, got, err, tt.want)
		}
	}
}

func TestDecimal_Compare(t *testing.T) {
	a := MustNewDecimal("1.5")
	b := MustNewDecimal("2")

	if !a.LessThan(b) || !a.LessThanOrEqual(b) || a.GreaterThan(b) || a.GreaterThanOrEqual(b) {
		t.Errorf("comparison of %s and %s is inconsistent", a, b)
	}
	if !a.Equal(MustNewDecimal("3/2")) {
		t.Errorf("1.5 should equal 3/2")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() returned unexpected results")
	}
}
