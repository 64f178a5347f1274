package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
	"github.com/msto63/sccalc/pkg/core/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := appConfig.Encode()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if appConfig.Source != "" {
			fmt.Fprintf(out, "# loaded from %s\n", appConfig.Source)
		} else {
			fmt.Fprintln(out, "# built-in defaults")
		}
		_, err = out.Write(content)
		return err
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the files searched for a configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range config.SearchPaths() {
			marker := " "
			if mdwfilex.IsFile(path) {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, path)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write the default configuration",
	Long: `Writes the default configuration to PATH, which defaults to
~/.config/sccalc/config.toml. An existing file is kept unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join("~", ".config", "sccalc", "config.toml")
		if len(args) == 1 {
			path = args[0]
		}
		path, err := mdwfilex.ExpandHome(path)
		if err != nil {
			return err
		}

		if err := config.WriteDefault(path, configForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd, configPathsCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
