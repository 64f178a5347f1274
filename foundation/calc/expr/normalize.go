// File: normalize.go
// Title: Unary Minus Normalization
// Description: Rewrites unary minus into "( 0 - operand )" so later stages
//              only see binary operators. The rewrite wraps exactly one
//              operand token and happens before precedence is resolved,
//              which makes -3^2 evaluate as (0-3)^2.
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

// Normalize returns tokens with every unary minus desugared. A minus is
// unary when it is followed by an operand and is either first or preceded
// by something other than an operand or ')'.
func Normalize(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isUnaryMinus(tokens, i) {
			out = append(out, tok)
			continue
		}
		pos := tok.Position
		out = append(out,
			Token{Lexeme: "(", Kind: TokenOpenParen, Position: pos},
			numberToken(mdwmathx.Zero(), pos),
			tok,
			tokens[i+1],
			Token{Lexeme: ")", Kind: TokenCloseParen, Position: pos},
		)
		i++
	}
	return out
}

func isUnaryMinus(tokens []Token, i int) bool {
	tok := tokens[i]
	if tok.Kind != TokenBinaryOp || tok.Lexeme != "-" {
		return false
	}
	if i+1 >= len(tokens) || !tokens[i+1].IsOperand() {
		return false
	}
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	return !prev.IsOperand() && prev.Kind != TokenCloseParen
}
