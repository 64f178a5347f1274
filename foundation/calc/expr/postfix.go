// File: postfix.go
// Title: Infix to Postfix Conversion
// Description: Operator-precedence conversion of normalized tokens into
//              postfix order. All binary operators are left-associative.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package expr

import "fmt"

// ToPostfix converts infix tokens to postfix order. The returned messages
// describe bracket mismatches; when there are any the postfix slice must
// not be evaluated.
func ToPostfix(tokens []Token) ([]Token, []string) {
	var (
		output []Token
		stack  []Token
		errs   []string
		open   int
	)

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber, TokenConst, TokenVar, TokenIdentifier:
			output = append(output, tok)

		case TokenOpenParen:
			open++
			stack = append(stack, tok)

		case TokenCloseParen:
			open--
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenOpenParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, append(errs, "Unmatched brackets, no matching '(' found")
			}
			stack = stack[:len(stack)-1]

		case TokenFunction:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if precedence(top) < PrecedenceFunction || top.Kind == TokenFunction {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		case TokenBinaryOp, TokenAssignment:
			current := precedence(tok)
			for len(stack) > 0 && precedence(stack[len(stack)-1]) >= current {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		default:
			errs = append(errs, fmt.Sprintf("[char_index:%d] Token list contains unknown or bad token type", tok.Position))
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind != TokenOpenParen {
			output = append(output, top)
		}
	}

	if open > 0 {
		errs = append(errs, fmt.Sprintf("Bracket mismatch. Some brackets dont have ')', %d specifically", open))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return output, nil
}

func precedence(tok Token) int {
	switch tok.Kind {
	case TokenAssignment:
		return PrecedenceAssignment
	case TokenFunction:
		return PrecedenceFunction
	case TokenBinaryOp:
		if op, ok := operators[tok.Lexeme]; ok {
			return op.Precedence
		}
	}
	return PrecedenceNone
}
