// File: table.go
// Title: Command Table
// Description: An ordered table of commands sharing a prefix. Dispatch
//              tries the commands in registration order.
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
	"strings"

	mdwerror "github.com/msto63/sccalc/foundation/core/error"
	"github.com/msto63/sccalc/foundation/core/log"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
)

// Table holds the commands of one prefix
type Table struct {
	commands []*CommandSpec
	options  Options
	logger   *log.Logger
}

// NewTable creates an empty command table
func NewTable(opts Options) *Table {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	return &Table{
		options: opts,
		logger:  opts.Logger.WithField("component", "calc-registry"),
	}
}

// Prefix returns the command prefix of the table.
func (t *Table) Prefix() string {
	return t.options.Prefix
}

// Register appends cmd. Empty names, missing callbacks and words already
// used by another command are rejected.
func (t *Table) Register(cmd *CommandSpec) error {
	if cmd == nil {
		return mdwerror.New("command definition cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register")
	}
	if mdwstringx.IsBlank(cmd.Name) {
		return mdwerror.New("command name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register")
	}
	if cmd.Callback == nil {
		return mdwerror.Newf("command %s has no callback", cmd.Name).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register")
	}

	for _, word := range append([]string{cmd.Name}, cmd.Aliases...) {
		if existing := t.Lookup(word); existing != nil {
			return mdwerror.Newf("command %s%s already registered", t.options.Prefix, word).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("registry.Register").
				WithDetail("existing", existing.Name)
		}
	}

	t.commands = append(t.commands, cmd)
	t.logger.Debug("Command registered", log.Fields{
		"command": t.options.Prefix + cmd.Name,
		"aliases": cmd.Aliases,
	})
	return nil
}

// MustRegister registers every command and panics on the first failure.
// It is meant for built-in tables assembled at startup.
func (t *Table) MustRegister(cmds ...*CommandSpec) {
	for _, cmd := range cmds {
		if err := t.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the command for word (without prefix), or nil.
func (t *Table) Lookup(word string) *CommandSpec {
	for _, cmd := range t.commands {
		if cmd.Matches(word) {
			return cmd
		}
	}
	return nil
}

// Commands returns the commands in registration order.
func (t *Table) Commands() []*CommandSpec {
	return append([]*CommandSpec(nil), t.commands...)
}

// IsCommand reports whether phrase carries the table prefix. A table with
// an empty prefix treats every phrase as a command candidate.
func (t *Table) IsCommand(phrase string) bool {
	return strings.HasPrefix(phrase, t.options.Prefix) && len(phrase) > len(t.options.Prefix)
}

// Dispatch runs the first command whose word equals phrases[0] without
// the prefix. NotMatched is returned when no command has that word.
func (t *Table) Dispatch(ctx context.Context, phrases []string, line int) Result {
	if len(phrases) == 0 || !t.IsCommand(phrases[0]) {
		return Result{Status: NotMatched}
	}

	word := strings.TrimPrefix(phrases[0], t.options.Prefix)
	args := append([]string{word}, phrases[1:]...)
	for _, cmd := range t.commands {
		result := cmd.MatchAndRun(ctx, t.options.Env, args, line)
		if result.Status == NotMatched {
			continue
		}
		t.logger.Debug("Command dispatched", log.Fields{
			"command": t.options.Prefix + cmd.Name,
			"status":  result.Status.String(),
			"line":    line,
		})
		return result
	}
	return Result{Status: NotMatched}
}
