// File: node.go
// Title: Grammar Nodes
// Description: The closed set of grammar node kinds, their constructors
//              and the matcher that dispatches on the kind. Combinators
//              consume a prefix of the remaining phrases and combine the
//              results of their children.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import (
	"fmt"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	mdwstore "github.com/msto63/sccalc/foundation/calc/store"
)

// NodeKind identifies a grammar node variant
type NodeKind int

const (
	KindRequiredGroup NodeKind = iota
	KindXor
	KindOptional
	KindAddition
	KindRepeat
	KindLiteralNumber
	KindVariable
	KindIterator
	KindCmpOperator
	KindExpression
	KindText
	KindFormatString
)

// String returns a string representation of the node kind
func (k NodeKind) String() string {
	switch k {
	case KindRequiredGroup:
		return "RequiredGroup"
	case KindXor:
		return "Xor"
	case KindOptional:
		return "Optional"
	case KindAddition:
		return "Addition"
	case KindRepeat:
		return "Repeat"
	case KindLiteralNumber:
		return "LiteralNumber"
	case KindVariable:
		return "Variable"
	case KindIterator:
		return "Iterator"
	case KindCmpOperator:
		return "CmpOperator"
	case KindExpression:
		return "Expression"
	case KindText:
		return "Text"
	case KindFormatString:
		return "FormatString"
	default:
		return "Unknown"
	}
}

// Direction states whether a named leaf reads an existing value (In),
// writes a possibly new one (Out), or both (InOut). In and InOut require
// the name to exist.
type Direction int

const (
	In Direction = iota
	Out
	InOut
)

// Leaf tags.
const (
	TagLiteral    = "literal"
	TagVariable   = "variable"
	TagIterator   = "iterator"
	TagOperator   = "operator"
	TagExpression = "expression"
	TagText       = "text"
	TagFormat     = "format"
)

// Env is what leaf matchers read: variables for existence and values,
// iterators for existence and listings.
type Env interface {
	mdwexpr.Env
	Iterator(name string) (*mdwstore.Iterator, bool)
}

// Node is one grammar element. Children is used by RequiredGroup and Xor
// (all children), Optional and Repeat (one child) and Addition (main then
// optional clause).
type Node struct {
	Kind      NodeKind
	Children  []*Node
	Direction Direction
	Convert   bool
	Exact     string
	Tag       string
}

// RequiredGroup matches every child in sequence.
func RequiredGroup(children ...*Node) *Node {
	return &Node{Kind: KindRequiredGroup, Children: children}
}

// Xor matches the first child that succeeds.
func Xor(children ...*Node) *Node {
	return &Node{Kind: KindXor, Children: children}
}

// Optional matches child, or nothing when no phrases remain.
func Optional(child *Node) *Node {
	return &Node{Kind: KindOptional, Children: []*Node{child}}
}

// Addition matches main and, if phrases remain, the optional clause.
func Addition(main, optional *Node) *Node {
	return &Node{Kind: KindAddition, Children: []*Node{main, optional}}
}

// Repeat matches child as often as possible, at least once.
func Repeat(child *Node) *Node {
	return &Node{Kind: KindRepeat, Children: []*Node{child}}
}

// LiteralNumber matches a decimal literal.
func LiteralNumber() *Node {
	return &Node{Kind: KindLiteralNumber}
}

// Variable matches a variable name. With convert set, an In match yields
// the variable's value instead of its name.
func Variable(direction Direction, convert bool) *Node {
	return &Node{Kind: KindVariable, Direction: direction, Convert: convert}
}

// Iterator matches an iterator name.
func Iterator(direction Direction) *Node {
	return &Node{Kind: KindIterator, Direction: direction}
}

// CmpOperator matches one of == != >= <= > <.
func CmpOperator() *Node {
	return &Node{Kind: KindCmpOperator}
}

// Expression matches a phrase that lexes cleanly and passes it on as text.
func Expression() *Node {
	return &Node{Kind: KindExpression}
}

// Text matches any phrase.
func Text() *Node {
	return &Node{Kind: KindText}
}

// ExactText matches only literal.
func ExactText(literal string) *Node {
	return &Node{Kind: KindText, Exact: literal}
}

// FormatString matches a template and one argument per specifier.
func FormatString() *Node {
	return &Node{Kind: KindFormatString}
}

// WithTag adds tag to the tags of every successful match of n.
func (n *Node) WithTag(tag string) *Node {
	n.Tag = tag
	return n
}

// Match matches n against phrases.
func (n *Node) Match(phrases []string, env Env) MatchResult {
	result := n.match(phrases, env)
	if result.OK() && n.Tag != "" {
		result.Tags = mergeTags(result.Tags, n.Tag)
	}
	return result
}

func (n *Node) match(phrases []string, env Env) MatchResult {
	switch n.Kind {
	case KindRequiredGroup:
		return n.matchGroup(phrases, env)
	case KindXor:
		return n.matchXor(phrases, env)
	case KindOptional:
		if len(phrases) == 0 {
			return success(nil, nil, 0)
		}
		return n.Children[0].Match(phrases, env)
	case KindAddition:
		return n.matchAddition(phrases, env)
	case KindRepeat:
		return n.matchRepeat(phrases, env)
	case KindLiteralNumber:
		return leaf(phrases, n.what(), matchLiteralNumber)
	case KindVariable:
		return leaf(phrases, n.what(), func(p string) MatchResult { return matchVariable(p, n.Direction, n.Convert, env) })
	case KindIterator:
		return leaf(phrases, n.what(), func(p string) MatchResult { return matchIterator(p, n.Direction, env) })
	case KindCmpOperator:
		return leaf(phrases, n.what(), matchCmpOperator)
	case KindExpression:
		return leaf(phrases, n.what(), func(p string) MatchResult { return matchExpression(p, env) })
	case KindText:
		return leaf(phrases, n.what(), func(p string) MatchResult { return matchText(p, n.Exact) })
	case KindFormatString:
		if len(phrases) == 0 {
			return failure("expected " + n.what())
		}
		return matchFormat(phrases, env)
	default:
		panic(fmt.Sprintf("grammar: unknown node kind %d", n.Kind))
	}
}

func (n *Node) matchGroup(phrases []string, env Env) MatchResult {
	var (
		values   []mdwexpr.Scalar
		tags     []string
		consumed int
	)
	for _, child := range n.Children {
		r := child.Match(phrases[consumed:], env)
		if !r.OK() {
			return failure(r.Errors...)
		}
		values = append(values, r.Values...)
		tags = mergeTags(tags, r.Tags...)
		consumed += r.Consumed
	}
	return success(values, tags, consumed)
}

func (n *Node) matchXor(phrases []string, env Env) MatchResult {
	var childErrors []string
	for _, child := range n.Children {
		r := child.Match(phrases, env)
		if r.OK() {
			return r
		}
		childErrors = append(childErrors, r.Errors...)
	}
	if len(phrases) == 0 {
		return failure("expected " + n.what())
	}
	return failure(append([]string{fmt.Sprintf("no phrase matches '%s'", phrases[0])}, childErrors...)...)
}

func (n *Node) matchAddition(phrases []string, env Env) MatchResult {
	main := n.Children[0].Match(phrases, env)
	if !main.OK() || main.Consumed >= len(phrases) {
		return main
	}
	optional := n.Children[1].Match(phrases[main.Consumed:], env)
	if !optional.OK() {
		return failure(optional.Errors...)
	}
	return success(
		append(append([]mdwexpr.Scalar{}, main.Values...), optional.Values...),
		mergeTags(append([]string{}, main.Tags...), optional.Tags...),
		main.Consumed+optional.Consumed,
	)
}

func (n *Node) matchRepeat(phrases []string, env Env) MatchResult {
	var (
		values   []mdwexpr.Scalar
		tags     []string
		consumed int
		matches  int
	)
	for consumed < len(phrases) {
		r := n.Children[0].Match(phrases[consumed:], env)
		if !r.OK() || r.Consumed == 0 {
			break
		}
		values = append(values, r.Values...)
		tags = mergeTags(tags, r.Tags...)
		consumed += r.Consumed
		matches++
	}
	if matches == 0 {
		return failure("requires at least one valid argument")
	}
	return success(values, tags, consumed)
}

// leaf consumes exactly one phrase.
func leaf(phrases []string, what string, match func(phrase string) MatchResult) MatchResult {
	if len(phrases) == 0 {
		return failure("expected " + what)
	}
	return match(phrases[0])
}
