// Package grammar matches command arguments against combinator grammars.
//
// Package: grammar
// Title: Command Grammar Combinators
// Description: A closed set of grammar nodes. Leaves consume one phrase
//              and yield a typed value; combinators sequence, choose,
//              repeat or make optional their children.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Usage
//
//	g := grammar.RequiredGroup(
//		grammar.Iterator(grammar.Out),
//		grammar.Xor(grammar.LiteralNumber(), grammar.Variable(grammar.In, true)),
//	)
//	r := g.Match([]string{"it", "7"}, st)
//	if !r.OK() {
//		return r.Errors
//	}
//	// r.Values = [Name(it), Number(7)], r.Tags = [iterator literal]
//
// A match never has both values and errors. Tags record which leaves
// matched, so a callback can tell a literal from a variable.
package grammar
