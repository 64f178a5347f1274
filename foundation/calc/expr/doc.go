// Package expr evaluates arithmetic expressions.
//
// Package: expr
// Title: Expression Lexer and Evaluator
// Description: Turns an expression string into a decimal result or a set
//              of error messages. The pipeline is lexer, unary-minus
//              normalizer, infix to postfix conversion and a stack based
//              postfix evaluator.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Grammar
//
// Numbers are decimal literals with at most one point. Identifiers name
// constants (pi, e, deg2rad, rad2deg), unary functions (sqrt, floor, ...),
// the previous answer A, or variables. Binary operators by precedence:
//
//	=                 1
//	||                3
//	&&                4
//	== != < <= > >=   5
//	+ -              10
//	* / %            20
//	^                30
//	functions        50
//
// All binary operators are left-associative. A leading or ambiguous minus
// is rewritten to (0 - operand) before precedence is applied, so -3^2 is 9.
//
// Usage
//
//	env := store.New()
//	v, err := expr.Evaluate("x = 2 * (3 + 4)", env)
//	if err != nil {
//		var evalErr *expr.EvalError
//		if errors.As(err, &evalErr) {
//			for _, msg := range evalErr.Messages {
//				fmt.Println("Error:", msg)
//			}
//		}
//	}
package expr
