// File: iterator.go
// Title: Iterator Sequences
// Description: Ordered decimal sequences backed by a deque. Elements are
//              appended at the back and taken from the back by Pop; whole
//              sequence passes rotate the deque once.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Rewrite is all-or-nothing

package store

import (
	"strings"

	"github.com/edwingeng/deque"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// Iterator is an ordered sequence of decimals.
type Iterator struct {
	items deque.Deque
}

// NewIterator returns an iterator holding values in order.
func NewIterator(values ...mdwmathx.Decimal) *Iterator {
	it := &Iterator{items: deque.NewDeque()}
	for _, v := range values {
		it.items.PushBack(v)
	}
	return it
}

// Len returns the number of elements.
func (it *Iterator) Len() int {
	return it.items.Len()
}

// Push appends v.
func (it *Iterator) Push(v mdwmathx.Decimal) {
	it.items.PushBack(v)
}

// Pop removes and returns the last element. ok is false when empty.
func (it *Iterator) Pop() (v mdwmathx.Decimal, ok bool) {
	if it.items.Empty() {
		return mdwmathx.Decimal{}, false
	}
	return it.items.PopBack().(mdwmathx.Decimal), true
}

// Clear removes every element.
func (it *Iterator) Clear() {
	it.items = deque.NewDeque()
}

// Values returns a snapshot of the elements in order.
func (it *Iterator) Values() []mdwmathx.Decimal {
	values := make([]mdwmathx.Decimal, 0, it.items.Len())
	it.rotate(func(v mdwmathx.Decimal) mdwmathx.Decimal {
		values = append(values, v)
		return v
	})
	return values
}

// Clone returns an independent copy.
func (it *Iterator) Clone() *Iterator {
	return NewIterator(it.Values()...)
}

// Rewrite visits every element in order. fn returns the replacement value
// and whether to keep it. The results are collected in a fresh deque that
// replaces the elements only when every call succeeds; on failure the
// iterator is unchanged and the error is returned.
func (it *Iterator) Rewrite(fn func(v mdwmathx.Decimal) (mdwmathx.Decimal, bool, error)) error {
	next := deque.NewDeque()
	for _, v := range it.Values() {
		out, keep, err := fn(v)
		if err != nil {
			return err
		}
		if keep {
			next.PushBack(out)
		}
	}
	it.items = next
	return nil
}

// Sum returns the sum of all elements, 0 when empty.
func (it *Iterator) Sum() mdwmathx.Decimal {
	total := mdwmathx.Zero()
	it.rotate(func(v mdwmathx.Decimal) mdwmathx.Decimal {
		total = total.Add(v)
		return v
	})
	return total
}

// Product returns the product of all elements, 1 when empty.
func (it *Iterator) Product() mdwmathx.Decimal {
	total := mdwmathx.One()
	it.rotate(func(v mdwmathx.Decimal) mdwmathx.Decimal {
		total = total.Multiply(v)
		return v
	})
	return total
}

// String formats the elements as "[1, 2, 3]".
func (it *Iterator) String() string {
	values := it.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (it *Iterator) rotate(fn func(v mdwmathx.Decimal) mdwmathx.Decimal) {
	n := it.items.Len()
	for i := 0; i < n; i++ {
		it.items.PushBack(fn(it.items.PopFront().(mdwmathx.Decimal)))
	}
}
