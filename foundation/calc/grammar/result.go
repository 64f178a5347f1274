// File: result.go
// Title: Match Results
// Description: The outcome of matching a grammar node against phrases.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import (
	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
)

// MatchResult holds either values or errors, never both and never
// neither. Tags are unique and keep insertion order. Consumed counts the
// phrases a successful match used.
type MatchResult struct {
	Values   []mdwexpr.Scalar
	Errors   []string
	Tags     []string
	Consumed int
}

// OK reports whether the match succeeded.
func (r MatchResult) OK() bool {
	return len(r.Errors) == 0
}

// HasTag reports whether tag was recorded.
func (r MatchResult) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func success(values []mdwexpr.Scalar, tags []string, consumed int) MatchResult {
	if len(values) == 0 {
		values = []mdwexpr.Scalar{mdwexpr.NoneScalar()}
	}
	return MatchResult{Values: values, Tags: mergeTags(nil, tags...), Consumed: consumed}
}

func failure(errs ...string) MatchResult {
	if len(errs) == 0 {
		errs = []string{"no match"}
	}
	return MatchResult{Errors: errs}
}

func mergeTags(tags []string, more ...string) []string {
	for _, tag := range more {
		if tag == "" {
			continue
		}
		seen := false
		for _, t := range tags {
			if t == tag {
				seen = true
				break
			}
		}
		if !seen {
			tags = append(tags, tag)
		}
	}
	return tags
}
