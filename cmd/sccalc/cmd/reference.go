package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/sccalc/foundation/calc/script"
)

var referenceCmd = &cobra.Command{
	Use:     "reference",
	Aliases: []string{"ref"},
	Short:   "List constants, functions and commands",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := script.New(sessionOptions(cmd))
		session.WriteHelp(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}
