package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/sccalc/internal/history"
	"github.com/msto63/sccalc/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the full-screen calculator",
	Long: `Starts the full-screen calculator.

Tabs:
  Calculator  scrollback and input line
  Variables   current variables and iterators
  History     recorded evaluations

Keys: Tab switches tabs, Ctrl+L clears, Ctrl+C or Esc quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recorder, closeHistory := openRecorder(history.SourceTUI)
		defer closeHistory()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		code, err := tui.Run(ctx, tui.Options{
			Session:  sessionOptions(cmd),
			Recorder: recorder,
		})
		if err != nil {
			return err
		}
		return exitWith(code)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
