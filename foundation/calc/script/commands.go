// File: commands.go
// Title: Script Commands
// Description: The "!" command table: mode switches, console output and
//              input, exit, block and loop control, repeat.
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
	"strings"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/grammar"
	"github.com/msto63/sccalc/foundation/calc/registry"
)

// operand matches a number literal or a defined variable, both as numbers.
func operand() *grammar.Node {
	return grammar.Xor(grammar.LiteralNumber(), grammar.Variable(grammar.In, true))
}

func switchArg() *grammar.Node {
	return grammar.Optional(grammar.Xor(
		grammar.ExactText("on"),
		grammar.ExactText("off"),
		grammar.ExactText("toggle"),
	))
}

func condition() *grammar.Node {
	return grammar.RequiredGroup(operand(), grammar.CmpOperator(), operand())
}

// switched applies an on/off/toggle argument to current. announce is set
// when no argument was given.
func switched(call registry.Call, current bool) (value, announce bool) {
	switch {
	case call.HasTag("on"):
		return true, false
	case call.HasTag("off"):
		return false, false
	case call.HasTag("toggle"):
		return !current, false
	default:
		return !current, true
	}
}

func enabledText(on bool, what string) string {
	if on {
		return "ENABLED " + what + " OUTPUT"
	}
	return "DISABLED " + what + " OUTPUT"
}

// joinText joins the text values of a call, skipping the empty match.
func joinText(values []mdwexpr.Scalar) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v.Kind != mdwexpr.ScalarNone {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, " ")
}

// exitCode converts the optional argument of an exit command.
func exitCode(values []mdwexpr.Scalar) (int, error) {
	if len(values) == 0 || values[0].Kind != mdwexpr.ScalarNumber {
		return ExitOK, nil
	}
	code, err := values[0].Number.Int64()
	if err != nil || code < -1<<31 || code > 1<<31-1 {
		return 0, fmt.Errorf("exit code %s out of range", values[0].Number)
	}
	return int(code), nil
}

func (s *Session) scriptCommands() []*registry.CommandSpec {
	cmds := []*registry.CommandSpec{
		{
			Name:        "strict",
			Description: "stop at the first error",
			Callback: func(call registry.Call) []string {
				s.strict = true
				return nil
			},
		},
		{
			Name:        "debug",
			Grammar:     switchArg(),
			Description: "switch debug output",
			Callback: func(call registry.Call) []string {
				on, announce := switched(call, s.debug)
				s.SetDebug(on)
				if announce {
					fmt.Fprintln(s.stdout, enabledText(on, "DEBUG"))
				}
				return nil
			},
		},
		{
			Name:        "echo",
			Grammar:     switchArg(),
			Description: "switch printing of values",
			Callback: func(call registry.Call) []string {
				on, announce := switched(call, s.echo)
				s.echo = on
				if announce {
					fmt.Fprintln(s.stdout, enabledText(on, "ECHO"))
				}
				return nil
			},
		},
		{
			Name:        "input",
			Grammar:     grammar.Optional(grammar.Repeat(grammar.Text())),
			Description: "read a number into variable 'input'",
			Callback:    s.inputCommand,
		},
		{
			Name:        "print",
			Grammar:     grammar.Optional(grammar.Repeat(grammar.Text())),
			Description: "print text",
			Callback: func(call registry.Call) []string {
				fmt.Fprintln(s.stdout, joinText(call.Values))
				return nil
			},
		},
		{
			Name:        "printf",
			Grammar:     grammar.FormatString(),
			Description: "print a template with %v %e %i %n arguments",
			Callback: func(call registry.Call) []string {
				text, err := grammar.Format(call.Values, s.evaluateQuiet)
				if err != nil {
					return []string{err.Error()}
				}
				fmt.Fprintln(s.stdout, text)
				return nil
			},
		},
		{
			Name:        "varout",
			Grammar:     grammar.RequiredGroup(grammar.Variable(grammar.In, false), grammar.Optional(grammar.ExactText("-name"))),
			Description: "print a variable, optionally with its name",
			Callback:    s.varoutCommand,
		},
		{
			Name:        "iterout",
			Grammar:     grammar.RequiredGroup(grammar.Iterator(grammar.In), grammar.Optional(grammar.ExactText("-name"))),
			Description: "print an iterator, optionally with its name",
			Callback: func(call registry.Call) []string {
				name := call.Values[0].Name
				it, _ := s.store.Iterator(name)
				if call.HasTag("-name") {
					fmt.Fprintf(s.stdout, "%s=%s\n", name, it)
				} else {
					fmt.Fprintln(s.stdout, it.String())
				}
				return nil
			},
		},
		{
			Name:        "exit",
			Grammar:     grammar.Optional(operand()),
			Description: "end with an exit code",
			Callback:    s.exitCommand,
		},
		{
			Name:        "if",
			Grammar:     grammar.Addition(condition(), grammar.RequiredGroup(grammar.Variable(grammar.Out, false), operand())),
			Description: "open a block, or assign when the condition holds",
			Callback:    s.ifCommand,
		},
		{
			Name:        "while",
			Grammar:     condition(),
			Description: "repeat a block up to !endwhile while the condition holds",
			Callback: func(call registry.Call) []string {
				if !s.inScript {
					return []string{"loops are only available in scripts"}
				}
				if compare(call.Values) {
					s.signal = signalWhileTrue
				} else {
					s.signal = signalWhileFalse
				}
				return nil
			},
		},
		{
			Name:        "repeat",
			Grammar:     grammar.RequiredGroup(operand(), grammar.Expression()),
			Description: "evaluate an expression N times",
			Callback:    s.repeatCommand,
		},
	}
	return append(cmds, s.iteratorCommands()...)
}

func compare(values []mdwexpr.Scalar) bool {
	return values[1].Compare.Compare(values[0].Number, values[2].Number)
}

func (s *Session) inputCommand(call registry.Call) []string {
	prompt := joinText(call.Values)
	if prompt == "" {
		prompt = DefaultInputPrompt
	}
	value, err := s.readNumber(prompt)
	if err != nil {
		return []string{err.Error()}
	}
	s.store.Assign("input", value)
	return nil
}

func (s *Session) varoutCommand(call registry.Call) []string {
	name := call.Values[0].Name
	value, _ := s.store.Lookup(name)
	if call.HasTag("-name") {
		fmt.Fprintf(s.stdout, "%s=%s\n", name, value)
	} else {
		fmt.Fprintln(s.stdout, value.String())
	}
	return nil
}

func (s *Session) exitCommand(call registry.Call) []string {
	code, err := exitCode(call.Values)
	if err != nil {
		return []string{err.Error()}
	}
	s.exiting = true
	s.exitCode = code
	return nil
}

func (s *Session) ifCommand(call registry.Call) []string {
	holds := compare(call.Values)
	if len(call.Values) == 5 {
		if holds {
			s.store.Assign(call.Values[3].Name, call.Values[4].Number)
		}
		return nil
	}
	if !s.inScript {
		return []string{"blocks are only available in scripts"}
	}
	if holds {
		s.signal = signalIfTrue
	} else {
		s.signal = signalIfFalse
	}
	return nil
}

func (s *Session) repeatCommand(call registry.Call) []string {
	count, err := call.Values[0].Number.Int64()
	if err != nil {
		return []string{fmt.Sprintf("count %s out of range", call.Values[0].Number)}
	}
	expression := call.Values[1].Text
	for i := int64(0); i < count; i++ {
		if err := call.Context.Err(); err != nil {
			return []string{err.Error()}
		}
		if _, err := s.evaluateQuiet(expression); err != nil {
			return []string{err.Error()}
		}
	}
	return nil
}
