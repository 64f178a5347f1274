// File: usage.go
// Title: Usage Strings
// Description: Renders a grammar as a one-line usage synopsis.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import "strings"

// Usage renders n, for example "<NUMBER|VAR> <OP> <NUMBER|VAR> [<VAR> <NUMBER|VAR>]".
func (n *Node) Usage() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindRequiredGroup:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			parts = append(parts, child.Usage())
		}
		return strings.Join(parts, " ")
	case KindXor:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			parts = append(parts, strings.Trim(child.Usage(), "<>"))
		}
		return "<" + strings.Join(parts, "|") + ">"
	case KindOptional:
		return "[" + n.Children[0].Usage() + "]"
	case KindAddition:
		return n.Children[0].Usage() + " [" + n.Children[1].Usage() + "]"
	case KindRepeat:
		return n.Children[0].Usage() + "..."
	case KindText:
		if n.Exact != "" {
			return n.Exact
		}
		return "<" + n.what() + ">"
	default:
		return "<" + n.what() + ">"
	}
}

// what names the thing a node expects in error messages.
func (n *Node) what() string {
	switch n.Kind {
	case KindLiteralNumber:
		return "NUMBER"
	case KindVariable:
		return "VAR"
	case KindIterator:
		return "ITERATOR"
	case KindCmpOperator:
		return "OP"
	case KindExpression:
		return "EXPR"
	case KindText:
		if n.Exact != "" {
			return n.Exact
		}
		return "TEXT"
	case KindFormatString:
		return "FORMAT"
	case KindXor:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			parts = append(parts, child.what())
		}
		return strings.Join(parts, "|")
	default:
		if len(n.Children) > 0 {
			return n.Children[0].what()
		}
		return n.Kind.String()
	}
}
