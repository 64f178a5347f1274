// File: doc.go
// Title: Package Documentation for mathx
// Description: Package mathx provides the exact decimal type used by the
//              calculator's expression evaluator.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic
// - 2026-10-19 v0.2.0: Reduced to calculator arithmetic; currency and business helpers removed

// Package mathx provides an exact decimal type on math/big.Rat.
//
// Literals are parsed straight from their text, so 0.1 + 0.2 is exactly 0.3.
// Addition, subtraction, multiplication, division, remainder and integer
// powers stay exact. Real powers and the transcendental functions of the
// calculator go through float64 and come back via the shortest decimal
// representation of the float.
//
// Basic usage:
//
//	a := mathx.MustNewDecimal("0.1")
//	b := mathx.MustNewDecimal("0.2")
//	fmt.Println(a.Add(b)) // 0.3
//
//	q, err := a.Divide(mathx.Zero()) // err == mathx.ErrDivisionByZero
//
// Values are immutable; every operation returns a new Decimal.
package mathx
