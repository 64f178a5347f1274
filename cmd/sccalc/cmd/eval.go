package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	"github.com/msto63/sccalc/foundation/calc/script"
	"github.com/msto63/sccalc/internal/history"
)

var evalCmd = &cobra.Command{
	Use:   "eval EXPRESSION...",
	Short: "Evaluate one expression",
	Long: `Evaluates the arguments, joined by spaces, as a single expression and
prints the value. The exit code is 1 when the expression has errors.

Examples:
  sccalc eval "sqrt(2) * 2"
  sccalc eval 2 ^ 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluateExpression(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func evaluateExpression(cmd *cobra.Command, expression string) error {
	opts := sessionOptions(cmd)
	recorder, closeHistory := openRecorder(history.SourceEval)
	defer closeHistory()
	if recorder != nil {
		opts.OnEvaluate = recorder.Hook
	}

	session := script.New(opts)
	value, err := session.Evaluate(strings.TrimSpace(expression))
	if err != nil {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Input had errors, no value returned")
		for _, msg := range evaluationMessages(err) {
			fmt.Fprintf(errOut, "%s %s\n", errorLabel("Error:"), msg)
		}
		return exitWith(script.ExitFailure)
	}

	if session.Echo() {
		fmt.Fprintln(cmd.OutOrStdout(), value.String())
	}
	return nil
}

func evaluationMessages(err error) []string {
	var evalErr *mdwexpr.EvalError
	if errors.As(err, &evalErr) && len(evalErr.Messages) > 0 {
		return evalErr.Messages
	}
	return []string{err.Error()}
}
