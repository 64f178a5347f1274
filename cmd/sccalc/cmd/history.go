package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
	"github.com/msto63/sccalc/internal/history"
)

var (
	historyLimit     int
	historySession   string
	historySource    string
	historyContains  string
	historyErrors    bool
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded evaluations",
	Long: `Inspects the evaluation history recorded by the prompt, the full-screen
calculator and the eval command.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent evaluations",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old evaluations",
	Long: `Deletes evaluations older than --older-than, which defaults to the
configured history.retention.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries")
	historyListCmd.Flags().StringVar(&historySession, "session", "", "only this session ID")
	historyListCmd.Flags().StringVar(&historySource, "source", "", "only this source (repl, tui, eval)")
	historyListCmd.Flags().StringVar(&historyContains, "contains", "", "only inputs containing this text")
	historyListCmd.Flags().BoolVar(&historyErrors, "errors", false, "only failed evaluations")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "age cutoff, e.g. 720h")

	historyCmd.AddCommand(historyListCmd, historyStatsCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func withHistoryStore(cmd *cobra.Command, fn func(ctx context.Context, store history.Store) error) error {
	store, err := openHistoryStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return fn(ctx, store)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withHistoryStore(cmd, func(ctx context.Context, store history.Store) error {
		entries, err := store.Query(ctx, history.Filter{
			SessionID:  historySession,
			Source:     history.Source(historySource),
			Contains:   historyContains,
			ErrorsOnly: historyErrors,
			Limit:      historyLimit,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No evaluations recorded.")
			return nil
		}

		// oldest first, like a terminal scrollback
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			result := e.Value
			if e.Failed() {
				result = errorLabel("Error:") + " " + e.Error
			}
			fmt.Fprintf(out, "%s  %-4s  %s = %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Source,
				mdwstringx.PadRight(e.Input, 24, ' '),
				result)
		}
		return nil
	})
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	return withHistoryStore(cmd, func(ctx context.Context, store history.Store) error {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "History Statistics")
		fmt.Fprintln(out, "==================")
		fmt.Fprintf(out, "  Evaluations: %d\n", stats.Total)
		fmt.Fprintf(out, "  Errors:      %d\n", stats.Errors)
		fmt.Fprintf(out, "  Sessions:    %d\n", stats.Sessions)
		if path, err := appConfig.HistoryPath(); err == nil {
			if size, err := mdwfilex.Size(path); err == nil {
				fmt.Fprintf(out, "  Database:    %s (%s)\n", path, mdwfilex.FormatSize(size))
			}
		}
		if stats.Total > 0 {
			fmt.Fprintf(out, "  First:       %s\n", stats.First.Format(time.RFC3339))
			fmt.Fprintf(out, "  Last:        %s\n", stats.Last.Format(time.RFC3339))
		}

		sources := make([]string, 0, len(stats.BySource))
		for source := range stats.BySource {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		if len(sources) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "By source:")
			for _, source := range sources {
				fmt.Fprintf(out, "  %-6s %d\n", source, stats.BySource[history.Source(source)])
			}
		}
		return nil
	})
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	olderThan := historyOlderThan
	if !cmd.Flags().Changed("older-than") {
		olderThan = appConfig.History.Retention.Duration
	}
	if olderThan <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", olderThan)
	}

	return withHistoryStore(cmd, func(ctx context.Context, store history.Store) error {
		deleted, err := store.Prune(ctx, olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d evaluation(s) older than %s\n", deleted, olderThan)
		return nil
	})
}
