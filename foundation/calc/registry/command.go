// File: command.go
// Title: Command Matching
// Description: Matches the phrases of one line against a command and runs
//              its callback.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package registry

import (
	"context"
	"fmt"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/grammar"
)

// Matches reports whether word names the command or one of its aliases.
func (c *CommandSpec) Matches(word string) bool {
	if word == c.Name {
		return true
	}
	for _, alias := range c.Aliases {
		if word == alias {
			return true
		}
	}
	return false
}

// Usage renders the command word followed by its argument synopsis.
func (c *CommandSpec) Usage(prefix string) string {
	if c.Grammar == nil {
		return prefix + c.Name
	}
	return prefix + c.Name + " " + c.Grammar.Usage()
}

// MatchAndRun runs the command if phrases[0] is its (unprefixed) word and
// the remaining phrases satisfy its grammar completely.
func (c *CommandSpec) MatchAndRun(ctx context.Context, env grammar.Env, phrases []string, line int) Result {
	if len(phrases) == 0 || !c.Matches(phrases[0]) {
		return Result{Status: NotMatched}
	}
	args := phrases[1:]

	values := []mdwexpr.Scalar{mdwexpr.NoneScalar()}
	var tags []string
	consumed := 0
	if c.Grammar != nil {
		match := c.Grammar.Match(args, env)
		if !match.OK() {
			return Result{Status: ArgsInvalid, Command: c.Name, Errors: match.Errors}
		}
		values, tags, consumed = match.Values, match.Tags, match.Consumed
	}
	if consumed < len(args) {
		return Result{
			Status:  ArgsInvalid,
			Command: c.Name,
			Errors:  []string{fmt.Sprintf("too many arguments, unexpected '%s'", args[consumed])},
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	errs := c.Callback(Call{
		Context: ctx,
		Command: c.Name,
		Values:  values,
		Tags:    tags,
		Line:    line,
	})
	if len(errs) > 0 {
		return Result{Status: CallbackFailed, Command: c.Name, Errors: errs}
	}
	return Result{Status: Success, Command: c.Name}
}
