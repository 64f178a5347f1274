// Package registry dispatches command lines to registered commands.
//
// Package: registry
// Title: Command Dispatch Table
// Description: Commands pair a word with an argument grammar and a
//              callback. A table holds the commands of one prefix ("!" for
//              script commands, "" for interactive ones) and dispatches a
//              phrase list to the first command with a matching word.
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
//	table := registry.NewTable(registry.Options{Prefix: "!", Env: st})
//	table.MustRegister(&registry.CommandSpec{
//		Name:    "print",
//		Grammar: grammar.Repeat(grammar.Text()),
//		Callback: func(call registry.Call) []string {
//			...
//			return nil
//		},
//	})
//
//	switch res := table.Dispatch(ctx, phrases, line); res.Status {
//	case registry.NotMatched:
//		// unknown command
//	case registry.ArgsInvalid, registry.CallbackFailed:
//		// res.Errors
//	}
//
// A command matches only if its grammar consumes every argument; leftover
// phrases make the call ArgsInvalid with "too many arguments".
package registry
