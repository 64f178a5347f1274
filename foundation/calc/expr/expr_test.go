// File: expr_test.go
// Title: Expression Pipeline Tests
// Description: Tests for the lexer, the unary-minus normalizer, postfix
//              conversion and evaluation including error messages.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial test implementation

package expr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/sccalc/foundation/core/error"
	mdwlog "github.com/msto63/sccalc/foundation/core/log"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

type mapEnv struct {
	vars     map[string]mdwmathx.Decimal
	previous mdwmathx.Decimal
}

func newMapEnv() *mapEnv {
	return &mapEnv{vars: make(map[string]mdwmathx.Decimal), previous: mdwmathx.Zero()}
}

func (e *mapEnv) Lookup(name string) (mdwmathx.Decimal, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *mapEnv) Assign(name string, value mdwmathx.Decimal) {
	e.vars[name] = value
}

func (e *mapEnv) PreviousAnswer() mdwmathx.Decimal {
	return e.previous
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLex(t *testing.T) {
	env := newMapEnv()
	env.vars["x"] = mdwmathx.MustNewDecimal("5")
	env.previous = mdwmathx.MustNewDecimal("41")

	tests := []struct {
		name    string
		input   string
		kinds   []TokenKind
		lexemes string
	}{
		{"numbers and operators", "12 + .5*3.", []TokenKind{TokenNumber, TokenBinaryOp, TokenNumber, TokenBinaryOp, TokenNumber}, "12 + .5 * 3."},
		{"longest operator", "1>=2", []TokenKind{TokenNumber, TokenBinaryOp, TokenNumber}, "1 >= 2"},
		{"assignment keeps target", "x = 1", []TokenKind{TokenVar, TokenAssignment, TokenNumber}, "x = 1"},
		{"assignment before minus", "y=-1", []TokenKind{TokenVar, TokenAssignment, TokenBinaryOp, TokenNumber}, "y = - 1"},
		{"variable substituted", "x * 2", []TokenKind{TokenNumber, TokenBinaryOp, TokenNumber}, "5 * 2"},
		{"previous answer", "A", []TokenKind{TokenNumber}, "41"},
		{"constant and function", "sqrt(pi)", []TokenKind{TokenFunction, TokenOpenParen, TokenConst, TokenCloseParen}, "sqrt ( pi )"},
		{"undefined variable", "zz_1", []TokenKind{TokenVar}, "zz_1"},
		{"logical operators", "1&&0||1", []TokenKind{TokenNumber, TokenBinaryOp, TokenNumber, TokenBinaryOp, TokenNumber}, "1 && 0 || 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Lex(tt.input, env)
			got := kinds(tokens)
			if len(got) != len(tt.kinds) {
				t.Fatalf("Lex(%q) kinds = %v, want %v", tt.input, got, tt.kinds)
			}
			for i := range got {
				if got[i] != tt.kinds[i] {
					t.Errorf("Lex(%q) token %d = %v, want %v", tt.input, i, got[i], tt.kinds[i])
				}
			}
			if lexemes := Lexemes(tokens); lexemes != tt.lexemes {
				t.Errorf("Lex(%q) lexemes = %q, want %q", tt.input, lexemes, tt.lexemes)
			}
		})
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenErrorKind
		want  string
	}{
		{"3 $ 4", UnknownChar, "TOKEN ERROR: char 3. Unknown char '$'."},
		{"1.2.3", MultipleDecimalPoints, "TOKEN ERROR: char 1. Number cannot have more than one decimal point."},
		{"2 + !", UnknownChar, "TOKEN ERROR: char 5. Unknown char '!'."},
		{"1 + \x07", UnknownChar, "TOKEN ERROR: char 5. Unknown char 7."},
		{"é", UnknownChar, "TOKEN ERROR: char 1. Unknown char 'é'."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Lex(tt.input, nil)
			if !HasErrors(tokens) {
				t.Fatalf("Lex(%q) reported no errors", tt.input)
			}
			messages := TokenErrors(tokens)
			if len(messages) != 1 || messages[0] != tt.want {
				t.Errorf("TokenErrors() = %q, want [%q]", messages, tt.want)
			}
			for _, tok := range tokens {
				if tok.Kind == TokenBad && tok.Err.Kind != tt.kind {
					t.Errorf("error kind = %v, want %v", tok.Err.Kind, tt.kind)
				}
				if (tok.Kind == TokenBad) != (tok.Err != nil) {
					t.Errorf("token %v breaks the Bad/Err invariant", tok)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-3^2", "( 0 - 3 ) ^ 2"},
		{"2^-1", "2 ^ ( 0 - 1 )"},
		{"4 - 1", "4 - 1"},
		{"(1)-2", "( 1 ) - 2"},
		{"x = -y", "x = ( 0 - y )"},
		{"-(2)", "- ( 2 )"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Lexemes(Normalize(Lex(tt.input, nil)))
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_SyntheticPositions(t *testing.T) {
	tokens := Normalize(Lex("2 * -3", nil))
	for _, tok := range tokens[2:] {
		if tok.Lexeme != "3" && tok.Position != 4 {
			t.Errorf("synthetic token %v at %d, want position of the minus sign", tok, tok.Position)
		}
	}
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{"2+3*4", "2 3 4 * +", ""},
		{"(2+3)*4", "2 3 + 4 *", ""},
		{"2^3^2", "2 3 ^ 2 ^", ""},
		{"x = 1 + 2", "x 1 2 + =", ""},
		{"sqrt 16 + 1", "16 sqrt 1 +", ""},
		{"1 + 2 == 3 && 1", "1 2 + 3 == 1 &&", ""},
		{"(1+2", "", "Bracket mismatch. Some brackets dont have ')', 1 specifically"},
		{"1+2)", "", "Unmatched brackets, no matching '(' found"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			postfix, errs := ToPostfix(Normalize(Lex(tt.input, nil)))
			if tt.wantErr != "" {
				if len(errs) != 1 || errs[0] != tt.wantErr {
					t.Errorf("ToPostfix(%q) errors = %q, want [%q]", tt.input, errs, tt.wantErr)
				}
				if postfix != nil {
					t.Errorf("ToPostfix(%q) returned tokens alongside errors", tt.input)
				}
				return
			}
			if len(errs) > 0 {
				t.Fatalf("ToPostfix(%q) unexpected errors: %q", tt.input, errs)
			}
			if got := Lexemes(postfix); got != tt.want {
				t.Errorf("ToPostfix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"-3^2", "9"},
		{"2^-1", "0.5"},
		{"2^3^2", "64"},
		{"0.1+0.2", "0.3"},
		{"10/4", "2.5"},
		{"7 % 3", "1"},
		{"-7 % 3", "-1"},
		{"1 < 2", "1"},
		{"1 >= 2", "0"},
		{"2 != 2", "0"},
		{"1 + 2 == 3", "1"},
		{"1 && 0", "0"},
		{"0 || 3", "1"},
		{"round(2.5)", "2"},
		{"round 3.5", "4"},
		{"floor(-2.5)", "-3"},
		{"ceil 2.1", "3"},
		{"negate 3", "-3"},
		{"sqrt(16)+1", "5"},
		{"pi", "3.141592653589793"},
		{"4^0.5", "2"},
		{"script_version", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := newMapEnv()
			env.vars["script_version"] = mdwmathx.One()
			got, err := Evaluate(tt.input, env)
			if err != nil {
				t.Fatalf("Evaluate(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_AssignmentPersists(t *testing.T) {
	env := newMapEnv()

	v, err := Evaluate("x = 5", env)
	if err != nil || v.String() != "5" {
		t.Fatalf("Evaluate(x = 5) = %v, %v, want 5", v, err)
	}
	v, err = Evaluate("x+1", env)
	if err != nil || v.String() != "6" {
		t.Errorf("Evaluate(x+1) = %v, %v, want 6", v, err)
	}
	if _, err := Evaluate("x = x * 2", env); err != nil {
		t.Fatalf("Evaluate(x = x * 2) error: %v", err)
	}
	if got := env.vars["x"].String(); got != "10" {
		t.Errorf("x = %s, want 10", got)
	}
}

func TestEvaluate_PreviousAnswer(t *testing.T) {
	env := newMapEnv()
	env.previous = mdwmathx.MustNewDecimal("41")
	v, err := Evaluate("A + 1", env)
	if err != nil || v.String() != "42" {
		t.Errorf("Evaluate(A + 1) = %v, %v, want 42", v, err)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		input string
		stage Stage
		code  mdwerror.Code
		want  string
	}{
		{"1/0", StageEvaluation, mdwerror.CodeDivisionByZero, "[2] Division by zero"},
		{"5 % 0", StageEvaluation, mdwerror.CodeDivisionByZero, "[3] Modulo by zero"},
		{"sqrt(-1)", StageEvaluation, mdwerror.CodeMathDomain, "[1] Function failure, math domain error"},
		{"cot(0)", StageEvaluation, mdwerror.CodeDivisionByZero, "[1] Function failure, division by zero"},
		{"log10 0", StageEvaluation, mdwerror.CodeMathDomain, "[1] Function failure, math domain error"},
		{"acos 2", StageEvaluation, mdwerror.CodeMathDomain, "[1] Function failure, math domain error"},
		{"2^2000", StageEvaluation, mdwerror.CodeMathDomain, "[2] expression: '2^(2000)' failed, math range error"},
		{"3 = 4", StageEvaluation, mdwerror.CodeEvaluation, "[3] Assignment can only occur to a variable"},
		{"1 2", StageEvaluation, mdwerror.CodeEvaluation, "Too few operators, for the number of operands, 2 specifically"},
		{"1 +", StageEvaluation, mdwerror.CodeEvaluation, "Too many operators, for the number of operands"},
		{"sqrt", StageEvaluation, mdwerror.CodeEvaluation, "Too many operators, for the number of operands"},
		{"y", StageEvaluation, mdwerror.CodeEvaluation, "Variable 'y' is not defined"},
		{"y+1", StageEvaluation, mdwerror.CodeEvaluation, "[2] Expecting a number, not a variable 'y'"},
		{"z = y", StageEvaluation, mdwerror.CodeEvaluation, "[3] Expecting a number, not a variable 'y'"},
		{"", StageEvaluation, mdwerror.CodeEvaluation, "Nothing to evaluate"},
		{"(1+2", StageSyntax, mdwerror.CodeSyntax, "Bracket mismatch. Some brackets dont have ')', 1 specifically"},
		{"1 $ 2", StageLexical, mdwerror.CodeLexical, "TOKEN ERROR: char 3. Unknown char '$'."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := newMapEnv()
			_, err := Evaluate(tt.input, env)

			var evalErr *EvalError
			if !errors.As(err, &evalErr) {
				t.Fatalf("Evaluate(%q) error = %v, want *EvalError", tt.input, err)
			}
			if evalErr.Stage != tt.stage {
				t.Errorf("Stage = %v, want %v", evalErr.Stage, tt.stage)
			}
			if len(evalErr.Messages) != 1 || evalErr.Messages[0] != tt.want {
				t.Errorf("Messages = %q, want [%q]", evalErr.Messages, tt.want)
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("code = %v, want %v", evalErr.Code(), tt.code)
			}
			if len(env.vars) != 0 {
				t.Errorf("failed evaluation left variables behind: %v", env.vars)
			}
		})
	}
}

func TestEvaluator_DebugTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatLogfmt, Output: buf})

	if _, err := NewEvaluator(logger).Evaluate("1+2", nil); err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if !strings.Contains(buf.String(), "postfix=") {
		t.Errorf("debug trace missing postfix field: %q", buf.String())
	}

	buf.Reset()
	logger.SetLevel(mdwlog.LevelWarn)
	if _, err := NewEvaluator(logger).Evaluate("1+2", nil); err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("trace written above debug level: %q", buf.String())
	}
}

func TestOperatorTable(t *testing.T) {
	if err := validateOperators(operators); err != nil {
		t.Fatalf("built-in table invalid: %v", err)
	}

	bad := []map[string]*BinaryOperator{
		{"+": {Symbol: "-", Precedence: PrecedenceAdditive, Apply: operators["+"].Apply}},
		{"ab": {Symbol: "ab", Precedence: PrecedenceAdditive, Apply: operators["+"].Apply}},
		{"": {Symbol: "", Precedence: PrecedenceAdditive, Apply: operators["+"].Apply}},
		{"~": {Symbol: "~", Precedence: PrecedenceAssignment, Apply: operators["+"].Apply}},
		{"~": {Symbol: "~", Precedence: PrecedenceAdditive}},
	}
	for i, table := range bad {
		if err := validateOperators(table); err == nil {
			t.Errorf("table %d: validateOperators() = nil, want error", i)
		}
	}
}

func TestComparators(t *testing.T) {
	one, two := mdwmathx.One(), mdwmathx.NewDecimalFromInt(2)
	tests := []struct {
		symbol string
		want   bool
	}{
		{"==", false}, {"!=", true}, {"<", true}, {"<=", true}, {">", false}, {">=", false},
	}
	for _, tt := range tests {
		c, ok := LookupComparator(tt.symbol)
		if !ok {
			t.Fatalf("LookupComparator(%q) not found", tt.symbol)
		}
		if got := c.Compare(one, two); got != tt.want {
			t.Errorf("1 %s 2 = %v, want %v", tt.symbol, got, tt.want)
		}
	}
	if _, ok := LookupComparator("+"); ok {
		t.Error("LookupComparator(+) succeeded")
	}
	if len(ComparatorSymbols()) != 6 {
		t.Errorf("ComparatorSymbols() = %v", ComparatorSymbols())
	}
}

func TestReference(t *testing.T) {
	if got := strings.Join(ConstantNames(), ","); got != "deg2rad,e,pi,rad2deg" {
		t.Errorf("ConstantNames() = %s", got)
	}
	if len(FunctionNames()) != 16 {
		t.Errorf("FunctionNames() has %d entries, want 16", len(FunctionNames()))
	}
	if len(OperatorSymbols()) != 14 {
		t.Errorf("OperatorSymbols() has %d entries, want 14", len(OperatorSymbols()))
	}
}

func TestScalar_String(t *testing.T) {
	c, _ := LookupComparator(">=")
	tests := []struct {
		s    Scalar
		want string
	}{
		{NoneScalar(), ""},
		{NumberScalar(mdwmathx.MustNewDecimal("2.50")), "2.5"},
		{NameScalar("x"), "x"},
		{ComparatorScalar(c), ">="},
		{TextScalar("hi"), "hi"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.s.Kind, got, tt.want)
		}
	}
}
