// File: interface.go
// Title: Command Registry Types
// Description: Command specifications, call arguments and dispatch results
//              shared by the interactive and script command tables.
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

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/grammar"
	"github.com/msto63/sccalc/foundation/core/log"
)

// Options configures a command table
type Options struct {
	Prefix string        // Prefix of every command word, "!" for scripts
	Env    grammar.Env   // Variables and iterators seen by the grammars
	Logger *log.Logger
}

// Callback runs a matched command. It returns the error messages of the
// call; an empty result means success.
type Callback func(call Call) []string

// CommandSpec defines one command
type CommandSpec struct {
	Name        string        // Command word without prefix (e.g., "yield")
	Aliases     []string      // Alternative words (e.g., "h" for "help")
	Grammar     *grammar.Node // Argument grammar, nil for no arguments
	Callback    Callback      // Command implementation
	Description string        // One-line help text
}

// Call carries the matched arguments into a callback
type Call struct {
	Context context.Context
	Command string
	Values  []mdwexpr.Scalar
	Tags    []string
	Line    int
}

// HasTag reports whether the grammar match recorded tag.
func (c Call) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Status is the outcome of matching and running a command
type Status int

const (
	NotMatched Status = iota
	ArgsInvalid
	CallbackFailed
	Success
)

// String returns a string representation of the status
func (s Status) String() string {
	switch s {
	case NotMatched:
		return "NotMatched"
	case ArgsInvalid:
		return "ArgsInvalid"
	case CallbackFailed:
		return "CallbackFailed"
	case Success:
		return "Success"
	default:
		return "Unknown"
	}
}

// Result is what MatchAndRun and Dispatch return. Errors is empty unless
// Status is ArgsInvalid or CallbackFailed.
type Result struct {
	Status  Status
	Command string
	Errors  []string
}
