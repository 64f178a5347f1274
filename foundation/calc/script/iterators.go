// File: iterators.go
// Title: Iterator Commands
// Description: Commands that build, transform, reduce and persist named
//              iterators.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package script

import (
	"fmt"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/grammar"
	"github.com/msto63/sccalc/foundation/calc/registry"
	mdwlog "github.com/msto63/sccalc/foundation/core/log"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

func (s *Session) iteratorCommands() []*registry.CommandSpec {
	target := func() *grammar.Node { return grammar.Variable(grammar.Out, false) }
	side := func() *grammar.Node { return grammar.Xor(grammar.LiteralNumber(), grammar.Variable(grammar.Out, false)) }

	return []*registry.CommandSpec{
		{
			Name:        "yield",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.Out), operand()),
			Description: "append a value",
			Callback: func(call registry.Call) []string {
				s.store.EnsureIterator(call.Values[0].Name).Push(call.Values[1].Number)
				return nil
			},
		},
		{
			Name:        "clear",
			Grammar:     grammar.Iterator(grammar.Out),
			Description: "empty an iterator",
			Callback: func(call registry.Call) []string {
				s.store.EnsureIterator(call.Values[0].Name).Clear()
				return nil
			},
		},
		{
			Name:        "dup",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.Out), grammar.Iterator(grammar.In)),
			Description: "copy the second iterator into the first",
			Callback: func(call registry.Call) []string {
				in, _ := s.store.Iterator(call.Values[1].Name)
				s.store.SetIterator(call.Values[0].Name, in.Clone())
				return nil
			},
		},
		{
			Name:        "count",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.In), target()),
			Description: "store the number of elements",
			Callback: func(call registry.Call) []string {
				it, _ := s.store.Iterator(call.Values[0].Name)
				s.store.Assign(call.Values[1].Name, mdwmathx.NewDecimalFromInt(int64(it.Len())))
				return nil
			},
		},
		{
			Name:        "map",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.In), grammar.Expression()),
			Description: "replace every element by an expression of it",
			Callback:    s.mapCommand,
		},
		{
			Name:        "filter",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.In), side(), grammar.CmpOperator(), side()),
			Description: "keep the elements for which a comparison holds",
			Callback:    s.filterCommand,
		},
		{
			Name:        "next",
			Grammar:     grammar.Iterator(grammar.In),
			Description: "pop the last element into the like-named variable",
			Callback: func(call registry.Call) []string {
				name := call.Values[0].Name
				it, _ := s.store.Iterator(name)
				if v, ok := it.Pop(); ok {
					s.store.Assign(name, v)
				}
				return nil
			},
		},
		{
			Name:        "sum",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.In), target()),
			Description: "store the sum of the elements",
			Callback: func(call registry.Call) []string {
				it, _ := s.store.Iterator(call.Values[0].Name)
				s.store.Assign(call.Values[1].Name, it.Sum())
				return nil
			},
		},
		{
			Name:        "product",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.In), target()),
			Description: "store the product of the elements",
			Callback: func(call registry.Call) []string {
				it, _ := s.store.Iterator(call.Values[0].Name)
				s.store.Assign(call.Values[1].Name, it.Product())
				return nil
			},
		},
		{
			Name:        "write",
			Grammar:     grammar.RequiredGroup(grammar.Text(), grammar.Iterator(grammar.In), target()),
			Description: "save an iterator to a file, status into a variable",
			Callback: func(call registry.Call) []string {
				it, _ := s.store.Iterator(call.Values[1].Name)
				status := WriteIterator(call.Values[0].Text, it)
				s.logger.Debug("Iterator written", mdwlog.Fields{
					"path":   call.Values[0].Text,
					"status": int(status),
				})
				s.store.Assign(call.Values[2].Name, mdwmathx.NewDecimalFromInt(int64(status)))
				return nil
			},
		},
		{
			Name:        "read",
			Grammar:     grammar.RequiredGroup(grammar.Text(), grammar.Iterator(grammar.Out), target()),
			Description: "load an iterator from a file, status into a variable",
			Callback: func(call registry.Call) []string {
				it, status := ReadIterator(call.Values[0].Text)
				if status == StatusOK {
					s.store.SetIterator(call.Values[1].Name, it)
				}
				s.logger.Debug("Iterator read", mdwlog.Fields{
					"path":   call.Values[0].Text,
					"status": int(status),
				})
				s.store.Assign(call.Values[2].Name, mdwmathx.NewDecimalFromInt(int64(status)))
				return nil
			},
		},
	}
}

// mapCommand binds the iterator's name to each element in turn and
// replaces the element by the expression's value. A failing element
// aborts the command with the iterator and the variable untouched.
func (s *Session) mapCommand(call registry.Call) []string {
	name, expression := call.Values[0].Name, call.Values[1].Text
	it, _ := s.store.Iterator(name)
	previous, defined := s.store.Lookup(name)

	err := it.Rewrite(func(v mdwmathx.Decimal) (mdwmathx.Decimal, bool, error) {
		s.store.Assign(name, v)
		out, err := s.evaluateQuiet(expression)
		return out, true, err
	})
	if err != nil {
		if defined {
			s.store.Assign(name, previous)
		} else {
			s.store.Unset(name)
		}
		return []string{err.Error()}
	}
	return nil
}

// filterCommand keeps the elements for which the comparison holds. Names
// equal to the iterator's resolve to the element.
func (s *Session) filterCommand(call registry.Call) []string {
	name := call.Values[0].Name
	left, cmp, right := call.Values[1], call.Values[2].Compare, call.Values[3]
	it, _ := s.store.Iterator(name)

	for _, side := range []mdwexpr.Scalar{left, right} {
		if side.Kind == mdwexpr.ScalarName && side.Name != name && !s.store.HasVariable(side.Name) {
			return []string{fmt.Sprintf("variable '%s' is not defined", side.Name)}
		}
	}

	resolve := func(side mdwexpr.Scalar, element mdwmathx.Decimal) mdwmathx.Decimal {
		if side.Kind == mdwexpr.ScalarNumber {
			return side.Number
		}
		if side.Name == name {
			return element
		}
		v, _ := s.store.Lookup(side.Name)
		return v
	}

	err := it.Rewrite(func(v mdwmathx.Decimal) (mdwmathx.Decimal, bool, error) {
		s.store.Assign(name, v)
		return v, cmp.Compare(resolve(left, v), resolve(right, v)), nil
	})
	if err != nil {
		return []string{err.Error()}
	}
	return nil
}
