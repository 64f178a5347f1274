package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/sccalc/foundation/calc/script"
	"github.com/msto63/sccalc/internal/history"
	"github.com/msto63/sccalc/pkg/core/logging"
)

// sessionOptions builds interpreter options from the loaded configuration
func sessionOptions(cmd *cobra.Command) script.Options {
	return script.Options{
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Stdin:    cmd.InOrStdin(),
		Echo:     appConfig.Script.Echo,
		Strict:   appConfig.Script.Strict,
		Debug:    appConfig.Script.Debug,
		MaxSteps: appConfig.Script.MaxSteps,
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// openHistoryStore opens the configured SQLite history database
func openHistoryStore() (*history.SQLiteStore, error) {
	path, err := appConfig.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.NewSQLiteStore(history.SQLiteConfig{Path: path})
}

// openRecorder returns a recorder for source, or nil when history is
// disabled or the database cannot be opened. History never blocks a
// calculation, so open failures are only logged.
func openRecorder(source history.Source) (*history.Recorder, func()) {
	if !appConfig.History.Enabled {
		return nil, func() {}
	}

	store, err := openHistoryStore()
	if err != nil {
		logging.New("sccalc").Warn("History disabled", "error", err)
		return nil, func() {}
	}
	return history.NewRecorder(store, source), func() { store.Close() }
}
