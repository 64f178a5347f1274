// File: store.go
// Title: Session Store
// Description: Variables, iterators and the previous answer of one
//              calculator session or script run.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package store

import (
	"sort"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// ScriptVersion is the value of the predefined script_version variable.
const ScriptVersion = 1

// ScriptVersionVariable names the predefined version variable.
const ScriptVersionVariable = "script_version"

// Store maps names to variables and iterators. Variables and iterators live
// in separate namespaces; commands such as !next bind a variable named like
// its iterator.
type Store struct {
	variables map[string]mdwmathx.Decimal
	iterators map[string]*Iterator
	previous  mdwmathx.Decimal
}

// New returns a store holding only the predefined variables.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops every variable and iterator and restores the predefined ones.
func (s *Store) Reset() {
	s.variables = map[string]mdwmathx.Decimal{
		ScriptVersionVariable: mdwmathx.NewDecimalFromInt(ScriptVersion),
	}
	s.iterators = make(map[string]*Iterator)
	s.previous = mdwmathx.Zero()
}

// Lookup returns the value of a variable.
func (s *Store) Lookup(name string) (mdwmathx.Decimal, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// Assign sets a variable, creating it if needed.
func (s *Store) Assign(name string, value mdwmathx.Decimal) {
	s.variables[name] = value
}

// Unset removes a variable. Predefined variables can be removed as well.
func (s *Store) Unset(name string) {
	delete(s.variables, name)
}

// HasVariable reports whether name is a defined variable.
func (s *Store) HasVariable(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// VariableNames returns the defined variable names in sorted order.
func (s *Store) VariableNames() []string {
	return sortedKeys(s.variables)
}

// PreviousAnswer returns the last successful plain evaluation, 0 initially.
func (s *Store) PreviousAnswer() mdwmathx.Decimal {
	return s.previous
}

// SetPreviousAnswer records the result of a plain evaluation.
func (s *Store) SetPreviousAnswer(value mdwmathx.Decimal) {
	s.previous = value
}

// Iterator returns a named iterator.
func (s *Store) Iterator(name string) (*Iterator, bool) {
	it, ok := s.iterators[name]
	return it, ok
}

// HasIterator reports whether name is a defined iterator.
func (s *Store) HasIterator(name string) bool {
	_, ok := s.iterators[name]
	return ok
}

// EnsureIterator returns the named iterator, creating an empty one if absent.
func (s *Store) EnsureIterator(name string) *Iterator {
	it, ok := s.iterators[name]
	if !ok {
		it = NewIterator()
		s.iterators[name] = it
	}
	return it
}

// SetIterator replaces the named iterator.
func (s *Store) SetIterator(name string, it *Iterator) {
	s.iterators[name] = it
}

// IteratorNames returns the defined iterator names in sorted order.
func (s *Store) IteratorNames() []string {
	return sortedKeys(s.iterators)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
