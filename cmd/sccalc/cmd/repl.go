package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/sccalc/internal/history"
	"github.com/msto63/sccalc/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive prompt",
	Long: `Starts the interactive prompt with line editing and persistent line
history. Type "help" for the list of constants, functions and commands and
"quit" to leave.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	opts := sessionOptions(cmd)
	recorder, closeHistory := openRecorder(history.SourceREPL)
	defer closeHistory()
	if recorder != nil {
		opts.OnEvaluate = recorder.Hook
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	r := repl.New(repl.Config{
		Prompt:      appConfig.REPL.Prompt,
		HistoryFile: appConfig.REPL.HistoryFile,
		Banner:      true,
		Session:     opts,
	})
	return exitWith(r.Run(ctx))
}
