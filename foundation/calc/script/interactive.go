// File: interactive.go
// Title: Interactive Commands
// Description: Unprefixed commands available at the prompt, and the help
//              page listing constants, functions, operators and commands.
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
	"io"
	"strings"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/grammar"
	"github.com/msto63/sccalc/foundation/calc/registry"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
)

const helpColumn = 24

func (s *Session) interactiveCommands() []*registry.CommandSpec {
	return []*registry.CommandSpec{
		{
			Name:        "help",
			Aliases:     []string{"h"},
			Description: "print help page",
			Callback: func(call registry.Call) []string {
				s.WriteHelp(s.stdout)
				return nil
			},
		},
		{
			Name:        "quit",
			Aliases:     []string{"q"},
			Description: "exit program",
			Callback: func(call registry.Call) []string {
				s.exiting = true
				s.exitCode = ExitOK
				return nil
			},
		},
		{
			Name:        "exit",
			Grammar:     grammar.Optional(operand()),
			Description: "exit program with exit code INT or with value in VAR",
			Callback:    s.exitCommand,
		},
		{
			Name:        "debug",
			Grammar:     switchArg(),
			Description: "toggle debug output",
			Callback:    s.commands.Lookup("debug").Callback,
		},
		{
			Name:        "echo",
			Grammar:     switchArg(),
			Description: "toggle echo output",
			Callback:    s.commands.Lookup("echo").Callback,
		},
		{
			Name:        "input",
			Grammar:     grammar.Optional(grammar.Repeat(grammar.Text())),
			Description: "output PROMPT and read a number into variable 'input'",
			Callback:    s.inputCommand,
		},
		{
			Name:        "print",
			Grammar:     grammar.Optional(grammar.Repeat(grammar.Text())),
			Description: "output TEXT to stdout",
			Callback:    s.commands.Lookup("print").Callback,
		},
		{
			Name:        "varout",
			Grammar:     grammar.RequiredGroup(grammar.Variable(grammar.In, false), grammar.Optional(grammar.ExactText("-name"))),
			Description: "output variable VAR with optional name",
			Callback:    s.varoutCommand,
		},
	}
}

// WriteHelp prints constants, functions and both command tables.
func (s *Session) WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Constants:")
	for _, name := range mdwexpr.ConstantNames() {
		value, _ := mdwexpr.LookupConstant(name)
		fmt.Fprintf(w, " %s - %s\n", name, value)
	}
	fmt.Fprintln(w, "Unary Functions")
	for _, name := range mdwexpr.FunctionNames() {
		fmt.Fprintf(w, " %s\n", name)
	}
	fmt.Fprintln(w, "Binary Operators")
	for _, symbol := range mdwexpr.OperatorSymbols() {
		op, _ := mdwexpr.LookupOperator(symbol)
		fmt.Fprintf(w, " %s - precedence %d\n", mdwstringx.PadLeft(symbol, 2, ' '), op.Precedence)
	}
	fmt.Fprintln(w, "Interactive mode commands")
	writeCommands(w, s.interactive)
	fmt.Fprintln(w, "Script commands")
	writeCommands(w, s.commands)
}

func writeCommands(w io.Writer, table *registry.Table) {
	for _, cmd := range table.Commands() {
		words := append([]string{table.Prefix() + cmd.Name}, cmd.Aliases...)
		synopsis := strings.Join(words, ", ")
		if cmd.Grammar != nil {
			synopsis += " " + cmd.Grammar.Usage()
		}
		fmt.Fprintf(w, " %s - %s\n", mdwstringx.PadRight(synopsis, helpColumn-1, ' '), cmd.Description)
	}
}
