// File: session.go
// Title: Calculator Session
// Description: A session owns the variable and iterator store, the
//              expression evaluator, the output streams and the two command
//              tables. Interactive front ends feed it single lines; the
//              interpreter feeds it whole scripts.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/registry"
	mdwstore "github.com/msto63/sccalc/foundation/calc/store"
	mdwlog "github.com/msto63/sccalc/foundation/core/log"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
)

// CommandPrefix marks script commands.
const CommandPrefix = "!"

// DefaultInputPrompt is shown by input commands without a prompt.
const DefaultInputPrompt = "INPUT >> "

// ErrInputClosed is returned by a LineReader when no more input will come.
var ErrInputClosed = errors.New("end of input")

// LineReader shows prompt and returns one line of user input.
type LineReader func(prompt string) (string, error)

// EvaluationHook observes every plain-line evaluation.
type EvaluationHook func(input string, value mdwmathx.Decimal, err error)

// Options configures a session
type Options struct {
	Store      *mdwstore.Store // Shared store, a fresh one when nil
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	ReadLine   LineReader // Overrides Stdin for input commands
	Echo       bool       // Print values of plain lines
	Strict     bool       // First per-line error ends a script
	Debug      bool       // Trace evaluation at debug level
	MaxSteps   int        // Executed line limit per script run, 0 for none
	Logger     *mdwlog.Logger
	OnEvaluate EvaluationHook
}

type signal int

const (
	signalNone signal = iota
	signalIfTrue
	signalIfFalse
	signalWhileTrue
	signalWhileFalse
)

// Session executes calculator input against one store
type Session struct {
	store       *mdwstore.Store
	evaluator   *mdwexpr.Evaluator
	logger      *mdwlog.Logger
	level       mdwlog.Level
	stdout      io.Writer
	stderr      io.Writer
	readLine    LineReader
	echo        bool
	strict      bool
	debug       bool
	maxSteps    int
	onEvaluate  EvaluationHook
	commands    *registry.Table
	interactive *registry.Table

	inScript bool
	signal   signal
	exiting  bool
	exitCode int
}

// New creates a session with the script and interactive commands
// registered.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Store == nil {
		opts.Store = mdwstore.New()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	logger := opts.Logger.WithField("component", "calc-script")
	s := &Session{
		store:      opts.Store,
		logger:     logger,
		level:      logger.GetLevel(),
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		readLine:   opts.ReadLine,
		echo:       opts.Echo,
		strict:     opts.Strict,
		maxSteps:   opts.MaxSteps,
		onEvaluate: opts.OnEvaluate,
	}
	if s.readLine == nil {
		s.readLine = stdinReader(opts.Stdin, opts.Stdout)
	}
	s.evaluator = mdwexpr.NewEvaluator(logger)
	s.SetDebug(opts.Debug)

	s.commands = registry.NewTable(registry.Options{Prefix: CommandPrefix, Env: s.store, Logger: logger})
	s.commands.MustRegister(s.scriptCommands()...)
	s.interactive = registry.NewTable(registry.Options{Env: s.store, Logger: logger})
	s.interactive.MustRegister(s.interactiveCommands()...)

	return s
}

func stdinReader(in io.Reader, out io.Writer) LineReader {
	reader := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// Store returns the session's store.
func (s *Session) Store() *mdwstore.Store {
	return s.store
}

// Commands returns the script command table.
func (s *Session) Commands() *registry.Table {
	return s.commands
}

// InteractiveCommands returns the table of unprefixed interactive commands.
func (s *Session) InteractiveCommands() *registry.Table {
	return s.interactive
}

// Echo reports whether values of plain lines are printed.
func (s *Session) Echo() bool { return s.echo }

// SetEcho switches value printing.
func (s *Session) SetEcho(on bool) { s.echo = on }

// Strict reports whether the first per-line error ends a script.
func (s *Session) Strict() bool { return s.strict }

// SetStrict switches strict mode.
func (s *Session) SetStrict(on bool) { s.strict = on }

// Debug reports whether debug tracing is on.
func (s *Session) Debug() bool { return s.debug }

// SetDebug switches the session logger between debug and its configured level.
func (s *Session) SetDebug(on bool) {
	s.debug = on
	if on {
		s.logger.SetLevel(mdwlog.LevelDebug)
	} else {
		s.logger.SetLevel(s.level)
	}
}

// Exiting reports whether an exit command ran, and its code.
func (s *Session) Exiting() (bool, int) {
	return s.exiting, s.exitCode
}

// Evaluate evaluates one expression line. A success becomes the previous
// answer A.
func (s *Session) Evaluate(input string) (mdwmathx.Decimal, error) {
	value, err := s.evaluator.Evaluate(input, s.store)
	if err == nil {
		s.store.SetPreviousAnswer(value)
	}
	if s.onEvaluate != nil {
		s.onEvaluate(input, value, err)
	}
	return value, err
}

// evaluateQuiet evaluates for a command callback; A is left alone.
func (s *Session) evaluateQuiet(input string) (mdwmathx.Decimal, error) {
	return s.evaluator.Evaluate(input, s.store)
}

// ExecuteLine runs one interactive line: a "!" command, an interactive
// command, or an expression. Errors are printed and never fatal; only
// quit and exit end the session.
func (s *Session) ExecuteLine(ctx context.Context, line string) Outcome {
	phrases := mdwstringx.SplitPhrases(line)
	if len(phrases) == 0 {
		return Continue()
	}

	if s.commands.IsCommand(phrases[0]) {
		res := s.commands.Dispatch(ctx, phrases, 0)
		if res.Status == registry.NotMatched {
			return s.interactiveError(fmt.Sprintf("unrecognised command '%s'", phrases[0]))
		}
		return s.interactiveResult(res)
	}

	if res := s.interactive.Dispatch(ctx, phrases, 0); res.Status != registry.NotMatched {
		return s.interactiveResult(res)
	}

	return s.evaluateInteractive(line)
}

func (s *Session) interactiveResult(res registry.Result) Outcome {
	if s.exiting {
		return Fatal(s.exitCode)
	}
	if res.Status == registry.Success {
		return Continue()
	}
	messages := make([]string, len(res.Errors))
	for i, msg := range res.Errors {
		messages[i] = res.Command + ": " + msg
	}
	return s.interactiveError(messages...)
}

func (s *Session) interactiveError(messages ...string) Outcome {
	for _, msg := range messages {
		fmt.Fprintf(s.stderr, "Error: %s\n", msg)
	}
	return Recoverable(messages...)
}

func (s *Session) evaluateInteractive(line string) Outcome {
	value, err := s.Evaluate(strings.TrimSpace(line))
	if err != nil {
		var evalErr *mdwexpr.EvalError
		if !errors.As(err, &evalErr) {
			return s.interactiveError(err.Error())
		}
		if evalErr.Stage == mdwexpr.StageLexical {
			for _, msg := range evalErr.Messages {
				fmt.Fprintln(s.stderr, msg)
			}
			fmt.Fprintf(s.stderr, "%d error(s)\n", len(evalErr.Messages))
			return Recoverable(evalErr.Messages...)
		}
		fmt.Fprintln(s.stderr, "Input had errors, no value returned")
		return s.interactiveError(evalErr.Messages...)
	}

	if s.echo {
		fmt.Fprintln(s.stdout, value.String())
	}
	return Continue()
}

// readNumber prompts until the reply parses as a number.
func (s *Session) readNumber(prompt string) (mdwmathx.Decimal, error) {
	for {
		text, err := s.readLine(prompt)
		if err != nil {
			return mdwmathx.Decimal{}, err
		}
		value, err := mdwmathx.NewDecimal(strings.TrimSpace(text))
		if err == nil {
			return value, nil
		}
		fmt.Fprintln(s.stdout, "Input Error: Expected a number")
	}
}

func (s *Session) takeSignal() signal {
	sig := s.signal
	s.signal = signalNone
	return sig
}
