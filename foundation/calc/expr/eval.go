// File: eval.go
// Title: Postfix Evaluator
// Description: Evaluates postfix tokens over a stack of scalars and runs
//              the full lexer to evaluator pipeline. Evaluation stops at
//              the first failure; messages carry the 1-based position of
//              the operator that failed.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package expr

import (
	"errors"
	"fmt"
	"strings"

	mdwerror "github.com/msto63/sccalc/foundation/core/error"
	mdwlog "github.com/msto63/sccalc/foundation/core/log"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// Stage names the pipeline stage an evaluation failed in
type Stage int

const (
	StageLexical Stage = iota
	StageSyntax
	StageEvaluation
)

// String returns a string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageLexical:
		return "lexical"
	case StageSyntax:
		return "syntax"
	default:
		return "evaluation"
	}
}

// EvalError is the error set of a failed evaluation. Lexical messages are
// already rendered as "TOKEN ERROR: ..." lines.
type EvalError struct {
	Stage    Stage
	Messages []string
	cause    *mdwerror.Error
}

func newEvalError(stage Stage, code mdwerror.Code, messages []string) *EvalError {
	return &EvalError{
		Stage:    stage,
		Messages: messages,
		cause: mdwerror.New(strings.Join(messages, "; ")).
			WithCode(code).
			WithOperation("expr.Evaluate").
			WithDetail("stage", stage.String()),
	}
}

func (e *EvalError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Unwrap exposes the coded error for mdwerror.HasCode and errors.As.
func (e *EvalError) Unwrap() error {
	return e.cause
}

// Code returns the error code of the failure.
func (e *EvalError) Code() mdwerror.Code {
	return e.cause.Code()
}

// Evaluator runs the expression pipeline and traces it at debug level.
type Evaluator struct {
	logger *mdwlog.Logger
}

// NewEvaluator creates an evaluator. The logger is used as given so a
// caller can switch its level at runtime.
func NewEvaluator(logger *mdwlog.Logger) *Evaluator {
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Evaluator{logger: logger}
}

// Evaluate runs input through the package default evaluator.
func Evaluate(input string, env Env) (mdwmathx.Decimal, error) {
	return NewEvaluator(nil).Evaluate(input, env)
}

// Evaluate lexes, normalizes, converts and evaluates input. Assignments
// write to env. On failure the error is an *EvalError.
func (e *Evaluator) Evaluate(input string, env Env) (mdwmathx.Decimal, error) {
	tokens := Lex(input, env)
	if HasErrors(tokens) {
		return mdwmathx.Decimal{}, newEvalError(StageLexical, mdwerror.CodeLexical, TokenErrors(tokens))
	}

	tokens = Normalize(tokens)
	e.logger.Debug("Expression normalized", mdwlog.Fields{"tokens": Lexemes(tokens)})

	postfix, errs := ToPostfix(tokens)
	if len(errs) > 0 {
		return mdwmathx.Decimal{}, newEvalError(StageSyntax, mdwerror.CodeSyntax, errs)
	}
	e.logger.Debug("Expression converted", mdwlog.Fields{"postfix": Lexemes(postfix)})

	return EvaluatePostfix(postfix, env)
}

// EvaluatePostfix evaluates tokens in postfix order.
func EvaluatePostfix(postfix []Token, env Env) (mdwmathx.Decimal, error) {
	var stack []Scalar

	fail := func(code mdwerror.Code, format string, args ...interface{}) (mdwmathx.Decimal, error) {
		return mdwmathx.Decimal{}, newEvalError(StageEvaluation, code, []string{fmt.Sprintf(format, args...)})
	}
	pop := func() Scalar {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for _, tok := range postfix {
		pos := tok.Position + 1

		switch tok.Kind {
		case TokenNumber, TokenConst:
			stack = append(stack, NumberScalar(*tok.Value))

		case TokenVar, TokenIdentifier:
			stack = append(stack, NameScalar(tok.Lexeme))

		case TokenFunction:
			if len(stack) < 1 {
				return fail(mdwerror.CodeEvaluation, "Too many operators, for the number of operands")
			}
			operand := pop()
			if operand.Kind != ScalarNumber {
				return fail(mdwerror.CodeEvaluation, "[%d] Expecting a number, not a variable '%s'", pos, operand)
			}
			fn, _ := LookupFunction(tok.Lexeme)
			result, err := fn(operand.Number)
			if err != nil {
				code, reason := functionFailure(err)
				return fail(code, "[%d] Function failure, %s", pos, reason)
			}
			stack = append(stack, NumberScalar(result))

		case TokenBinaryOp, TokenAssignment:
			if len(stack) < 2 {
				return fail(mdwerror.CodeEvaluation, "Too many operators, for the number of operands")
			}
			right := pop()
			left := pop()

			if tok.Kind == TokenAssignment {
				if right.Kind != ScalarNumber {
					return fail(mdwerror.CodeEvaluation, "[%d] Expecting a number, not a variable '%s'", pos, right)
				}
				if left.Kind != ScalarName {
					return fail(mdwerror.CodeEvaluation, "[%d] Assignment can only occur to a variable", pos)
				}
				if env != nil {
					env.Assign(left.Name, right.Number)
				}
				stack = append(stack, right)
				continue
			}

			for _, operand := range []Scalar{left, right} {
				if operand.Kind != ScalarNumber {
					return fail(mdwerror.CodeEvaluation, "[%d] Expecting a number, not a variable '%s'", pos, operand)
				}
			}
			op := operators[tok.Lexeme]
			if op.Precondition != nil {
				if messages := op.Precondition(left.Number, right.Number); len(messages) > 0 {
					return fail(preconditionCode(op), "[%d] %s", pos, strings.Join(messages, ", "))
				}
			}
			result, err := op.Apply(left.Number, right.Number)
			if err != nil {
				code, reason := functionFailure(err)
				return fail(code, "[%d] expression: '%s%s(%s)' failed, %s", pos, left, op.Symbol, right, reason)
			}
			stack = append(stack, NumberScalar(result))

		default:
			return fail(mdwerror.CodeEvaluation, "[char_index:%d] Token list contains unknown or bad token type", tok.Position)
		}
	}

	switch {
	case len(stack) == 0:
		return fail(mdwerror.CodeEvaluation, "Nothing to evaluate")
	case len(stack) > 1:
		return fail(mdwerror.CodeEvaluation, "Too few operators, for the number of operands, %d specifically", len(stack))
	case stack[0].Kind != ScalarNumber:
		return fail(mdwerror.CodeEvaluation, "Variable '%s' is not defined", stack[0])
	}
	return stack[0].Number, nil
}

func functionFailure(err error) (mdwerror.Code, string) {
	switch {
	case errors.Is(err, mdwmathx.ErrDivisionByZero):
		return mdwerror.CodeDivisionByZero, "division by zero"
	case errors.Is(err, mdwmathx.ErrMathDomain):
		return mdwerror.CodeMathDomain, "math domain error"
	case errors.Is(err, mdwmathx.ErrMathRange):
		return mdwerror.CodeMathDomain, "math range error"
	default:
		return mdwerror.CodeEvaluation, err.Error()
	}
}

func preconditionCode(op *BinaryOperator) mdwerror.Code {
	if op.Symbol == "/" || op.Symbol == "%" {
		return mdwerror.CodeDivisionByZero
	}
	return mdwerror.CodeEvaluation
}
