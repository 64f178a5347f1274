package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/sccalc/foundation/calc/script"
	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
	"github.com/msto63/sccalc/internal/watch"
	"github.com/msto63/sccalc/pkg/core/logging"
)

var (
	maxSteps    int
	watchScript bool
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a script file",
	Long: `Runs a script file. Use "-" to read the script from stdin.

Plain lines are evaluated as expressions, lines starting with "!" are
script commands and lines starting with "#" are comments. The process exit
code is the one passed to !exit, 1 if any line failed, and 0 otherwise.

With --watch the script is run again in a fresh session every time the
file is saved, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScriptFiles(cmd, args)
	},
}

func init() {
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "executed line limit, 0 for none")
	runCmd.Flags().BoolVarP(&watchScript, "watch", "w", false, "re-run the script whenever the file changes")
	rootCmd.AddCommand(runCmd)
}

func runScriptFiles(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == "-" {
		if watchScript {
			return errors.New("--watch requires a script file")
		}
		return runScriptReader(cmd, "stdin", cmd.InOrStdin())
	}
	if watchScript {
		return watchScriptFile(cmd, path)
	}

	source, err := mdwfilex.ReadString(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return runScript(cmd, path, source)
}

func runScriptReader(cmd *cobra.Command, name string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read script from %s: %w", name, err)
	}
	return runScript(cmd, name, string(content))
}

func runScript(cmd *cobra.Command, name, source string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	return exitWith(executeScript(ctx, cmd, name, source))
}

func executeScript(ctx context.Context, cmd *cobra.Command, name, source string) int {
	if cmd.Flags().Changed("max-steps") {
		appConfig.Script.MaxSteps = maxSteps
	}
	logging.New("sccalc").Debug("Running script", "name", name, "max_steps", appConfig.Script.MaxSteps)

	session := script.New(sessionOptions(cmd))
	return session.Run(ctx, source)
}

// watchScriptFile runs path once and then again after every change. A file
// that cannot be read is reported and the watcher keeps going.
func watchScriptFile(cmd *cobra.Command, path string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	code := script.ExitOK
	rerun := func(ctx context.Context) {
		source, err := mdwfilex.ReadString(path)
		if err != nil {
			printError(cmd.ErrOrStderr(), fmt.Errorf("failed to read script: %w", err))
			code = script.ExitFailure
			return
		}
		code = executeScript(ctx, cmd, path, source)
		fmt.Fprintf(cmd.ErrOrStderr(), "-- %s exited with %d, waiting for changes\n", path, code)
	}

	w, err := watch.New(path, rerun)
	if err != nil {
		return err
	}

	rerun(ctx)
	if err := w.Run(ctx); err != nil {
		return err
	}
	return exitWith(code)
}
