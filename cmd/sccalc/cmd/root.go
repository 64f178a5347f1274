package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
	"github.com/msto63/sccalc/pkg/core/config"
	"github.com/msto63/sccalc/pkg/core/logging"
	"github.com/msto63/sccalc/pkg/core/version"
)

// versionArg is the bare-version form: "sccalc __VERSION__"
const versionArg = "__VERSION__"

var (
	cfgFile   string
	verbose   bool
	strict    bool
	noEcho    bool
	noHistory bool

	// Loaded in PersistentPreRunE, with flag overrides applied
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "sccalc [FILE | EXPRESSION...]",
	Short: "sccalc - scriptable calculator",
	Long: `sccalc is an interactive calculator with a small scripting language.

Without arguments it starts the interactive prompt when stdin is a terminal
and runs stdin as a script otherwise. A single argument naming a file runs
that script; anything else is evaluated as an expression.

Examples:
  sccalc                     interactive prompt
  sccalc "2 * pi * r"        evaluate once
  sccalc loop.calc           run a script
  echo "1 + 1" | sccalc      run stdin as a script`,
	Args:              cobra.ArbitraryArgs,
	Version:           version.Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runRoot,
}

// ExitError carries a non-zero process exit code out of a command
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitWith turns a calculator exit code into a command result
func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

// Execute runs the root command on the process arguments and returns the
// process exit code
func Execute() int {
	return ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the root command on args. An argument that reads as an
// expression starting with a minus sign, such as "-3^2", ends flag parsing
// so that it reaches the command as a positional argument.
func ExecuteArgs(args []string) int {
	rootCmd.SetArgs(protectExpressions(args))
	err := rootCmd.Execute()

	var exitErr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		printError(rootCmd.ErrOrStderr(), err)
		return 1
	}
}

func init() {
	rootCmd.SetVersionTemplate(version.Info())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sccalc.toml or ~/.config/sccalc/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "stop scripts at the first error")
	rootCmd.PersistentFlags().BoolVar(&noEcho, "no-echo", false, "do not print values of plain lines")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record evaluations")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if strict {
		cfg.Script.Strict = true
	}
	if noEcho {
		cfg.Script.Echo = false
	}
	if noHistory {
		cfg.History.Enabled = false
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logging.Configure(logging.LoggerConfig{
		Name:   version.App,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	appConfig = cfg
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		if stdinIsTerminal() {
			return runREPL(cmd, args)
		}
		return runScriptReader(cmd, "stdin", cmd.InOrStdin())

	case len(args) == 1 && args[0] == versionArg:
		fmt.Fprintln(cmd.OutOrStdout(), version.Short())
		return nil

	case len(args) == 1 && mdwfilex.IsFile(args[0]):
		return runScriptFiles(cmd, args)

	default:
		return evaluateExpression(cmd, strings.Join(args, " "))
	}
}

// protectExpressions inserts "--" before the first argument that looks like
// a negative expression rather than a flag. Values of flags given as a
// separate argument are never treated as expressions.
func protectExpressions(args []string) []string {
	flags := knownFlags()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case strings.HasPrefix(arg, "--"):
			if f, ok := flags.long[strings.TrimPrefix(arg, "--")]; ok && f.NoOptDefVal == "" {
				i++
			}
		case len(arg) > 1 && arg[0] == '-':
			if !looksLikeExpression(arg, flags) {
				if f, ok := flags.short[arg[len(arg)-1]]; ok && len(arg) == 2 && f.NoOptDefVal == "" {
					i++
				}
				continue
			}
			protected := make([]string, 0, len(args)+1)
			protected = append(protected, args[:i]...)
			protected = append(protected, "--")
			return append(protected, args[i:]...)
		}
	}
	return args
}

// looksLikeExpression reports whether a dash-prefixed argument is a
// negated number, group or name rather than a shorthand flag.
func looksLikeExpression(arg string, flags flagIndex) bool {
	c := arg[1]
	switch {
	case c >= '0' && c <= '9', c == '.', c == '(':
		return true
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		_, isFlag := flags.short[c]
		return !isFlag
	default:
		return false
	}
}

type flagIndex struct {
	long  map[string]*pflag.Flag
	short map[byte]*pflag.Flag
}

// knownFlags collects the flags of the whole command tree, including the
// help and version flags cobra adds on execution.
func knownFlags() flagIndex {
	rootCmd.InitDefaultHelpFlag()
	rootCmd.InitDefaultVersionFlag()

	idx := flagIndex{long: make(map[string]*pflag.Flag), short: make(map[byte]*pflag.Flag)}
	add := func(f *pflag.Flag) {
		idx.long[f.Name] = f
		if f.Shorthand != "" {
			idx.short[f.Shorthand[0]] = f
		}
	}

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(add)
		c.PersistentFlags().VisitAll(add)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
	return idx
}

// stdinIsTerminal is replaced in tests
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel("Error:"), err)
}
