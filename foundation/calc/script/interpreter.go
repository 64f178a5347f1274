// File: interpreter.go
// Title: Script Interpreter
// Description: Runs a script line by line as an explicit state machine.
//              Blocks that are not taken are skipped by counting nested
//              openers and closers; loops jump back to their !while line
//              so the condition is re-evaluated on every pass.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package script

import (
	"context"
	"errors"
	"fmt"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/registry"
	mdwlog "github.com/msto63/sccalc/foundation/core/log"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
)

// State is the interpreter's execution mode
type State int

const (
	StateNormal State = iota
	StateSkippingIf
	StateSkippingWhile
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateSkippingIf:
		return "SkippingIf"
	case StateSkippingWhile:
		return "SkippingWhile"
	default:
		return "Unknown"
	}
}

// Warnings printed when a script ends inside a block.
const (
	WarningOpenIf    = "Warning: Not all if statements have been closed"
	WarningOpenWhile = "Warning: Not all while statements have been closed"
)

type whileFrame struct {
	start int
}

// Interpreter runs one script against a session
type Interpreter struct {
	session *Session
	lines   []mdwstringx.Line
	pc      int
	next    int
	state   State
	depth   int
	frames  []whileFrame
	openIfs int
	errors  int
	steps   int
}

// NewInterpreter prepares source for execution by s.
func NewInterpreter(s *Session, source string) *Interpreter {
	return &Interpreter{session: s, lines: mdwstringx.SourceLines(source)}
}

// Run executes source and returns the exit code.
func (s *Session) Run(ctx context.Context, source string) int {
	return NewInterpreter(s, source).Run(ctx)
}

// Run executes the script. The exit code is the code of an exit command,
// 1 when any line failed, 130 when ctx was canceled, and 0 otherwise.
func (in *Interpreter) Run(ctx context.Context) int {
	s := in.session
	s.inScript = true
	defer func() { s.inScript = false }()

	timer := s.logger.StartTimer("script run").WithField("lines", len(in.lines))
	code := in.run(ctx)
	timer.WithField("exit_code", code).WithField("errors", in.errors).Stop()
	return code
}

func (in *Interpreter) run(ctx context.Context) int {
	s := in.session
	for in.pc < len(in.lines) {
		line := in.lines[in.pc]
		if err := ctx.Err(); err != nil {
			in.report(line, err.Error())
			return ExitCanceled
		}
		in.steps++
		if s.maxSteps > 0 && in.steps > s.maxSteps {
			in.report(line, fmt.Sprintf("step limit of %d exceeded", s.maxSteps))
			return ExitFailure
		}

		in.next = in.pc + 1
		outcome := in.step(ctx, line)
		switch outcome.Kind {
		case OutcomeRecoverable:
			in.errors++
		case OutcomeFatal:
			return outcome.Code
		}
		in.pc = in.next
	}

	if in.state == StateSkippingIf || in.openIfs > 0 {
		fmt.Fprintln(s.stdout, WarningOpenIf)
	}
	if in.state == StateSkippingWhile || len(in.frames) > 0 {
		fmt.Fprintln(s.stdout, WarningOpenWhile)
	}
	if in.errors > 0 {
		return ExitFailure
	}
	return ExitOK
}

// step executes one line in the current state.
func (in *Interpreter) step(ctx context.Context, line mdwstringx.Line) Outcome {
	phrases := mdwstringx.SplitPhrases(line.Text)
	if len(phrases) == 0 {
		return Continue()
	}
	in.session.logger.Trace("Line", mdwlog.Fields{
		"line":  line.Number,
		"state": in.state.String(),
		"depth": in.depth,
	})

	switch in.state {
	case StateSkippingIf:
		in.skip(phrases, isBlockIf, "!endif")
		return Continue()
	case StateSkippingWhile:
		in.skip(phrases, func(p []string) bool { return p[0] == "!while" }, "!endwhile")
		return Continue()
	}

	switch phrases[0] {
	case "!endwhile":
		if len(in.frames) == 0 {
			return in.fatal(line, "endwhile: unmatched !endwhile")
		}
		frame := in.frames[len(in.frames)-1]
		in.frames = in.frames[:len(in.frames)-1]
		in.next = frame.start
		return Continue()
	case "!endif":
		if in.openIfs == 0 {
			return in.lineError(line, "endif: Unmatched endif")
		}
		in.openIfs--
		return Continue()
	}

	if in.session.commands.IsCommand(phrases[0]) {
		return in.dispatch(ctx, line, phrases)
	}
	return in.evaluate(line)
}

func isBlockIf(phrases []string) bool {
	return phrases[0] == "!if" && len(phrases) == 4
}

// skip counts nested openers until the closer of the skipped block.
func (in *Interpreter) skip(phrases []string, opens func([]string) bool, closer string) {
	switch {
	case opens(phrases):
		in.depth++
	case phrases[0] == closer:
		in.depth--
		if in.depth == 0 {
			in.state = StateNormal
		}
	}
}

func (in *Interpreter) dispatch(ctx context.Context, line mdwstringx.Line, phrases []string) Outcome {
	s := in.session
	res := s.commands.Dispatch(ctx, phrases, line.Number)

	switch res.Status {
	case registry.NotMatched:
		return in.lineError(line, fmt.Sprintf("unrecognised command '%s'", phrases[0]))
	case registry.ArgsInvalid, registry.CallbackFailed:
		messages := make([]string, len(res.Errors))
		for i, msg := range res.Errors {
			messages[i] = res.Command + ": " + msg
		}
		return in.fatal(line, messages...)
	}

	if exiting, code := s.Exiting(); exiting {
		return Fatal(code)
	}

	switch s.takeSignal() {
	case signalIfTrue:
		in.openIfs++
	case signalIfFalse:
		in.state, in.depth = StateSkippingIf, 1
	case signalWhileTrue:
		in.frames = append(in.frames, whileFrame{start: in.pc})
	case signalWhileFalse:
		in.state, in.depth = StateSkippingWhile, 1
	}
	return Continue()
}

// evaluate runs a plain expression line.
func (in *Interpreter) evaluate(line mdwstringx.Line) Outcome {
	s := in.session
	value, err := s.Evaluate(line.Text)
	if err == nil {
		if s.echo {
			fmt.Fprintln(s.stdout, value.String())
		}
		return Continue()
	}

	var messages []string
	var evalErr *mdwexpr.EvalError
	if errors.As(err, &evalErr) {
		messages = evalErr.Messages
	} else {
		messages = []string{err.Error()}
	}
	for _, msg := range messages {
		if evalErr != nil && evalErr.Stage == mdwexpr.StageLexical {
			fmt.Fprintf(s.stderr, "%d: %s\n", line.Number, msg)
		} else {
			fmt.Fprintf(s.stderr, "%d: Error: %s\n", line.Number, msg)
		}
	}
	if s.strict {
		return Fatal(ExitFailure, messages...)
	}
	return Recoverable(messages...)
}

// lineError reports a command error that ends the run only in strict mode.
func (in *Interpreter) lineError(line mdwstringx.Line, message string) Outcome {
	in.report(line, message)
	if in.session.strict {
		return Fatal(ExitFailure, message)
	}
	return Recoverable(message)
}

func (in *Interpreter) fatal(line mdwstringx.Line, messages ...string) Outcome {
	in.report(line, messages...)
	return Fatal(ExitFailure, messages...)
}

func (in *Interpreter) report(line mdwstringx.Line, messages ...string) {
	for _, msg := range messages {
		fmt.Fprintf(in.session.stderr, "[%d] Error: %s\n", line.Number, msg)
	}
}
