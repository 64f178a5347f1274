package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/msto63/sccalc/foundation/calc/script"
	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
	mdwstringx "github.com/msto63/sccalc/foundation/utils/stringx"
	"github.com/msto63/sccalc/pkg/core/logging"
	"github.com/msto63/sccalc/pkg/core/version"
)

// DefaultPrompt is shown before every interactive line
const DefaultPrompt = ">> "

// LineEditor is the subset of *liner.State the loop needs
type LineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// Config holds REPL settings
type Config struct {
	Prompt      string
	HistoryFile string // Line history, empty disables persistence
	Banner      bool
	Session     script.Options
	Editor      LineEditor // nil uses a liner terminal editor
}

// REPL is an interactive read-eval-print loop over a script session
type REPL struct {
	prompt      string
	historyFile string
	banner      bool
	editor      LineEditor
	session     *script.Session
	stdout      io.Writer
	logger      *logging.Logger
}

// New creates a REPL. Input commands inside the session read through the
// same line editor as the main prompt.
func New(cfg Config) *REPL {
	cfg.Prompt = mdwstringx.FromBlankDefault(cfg.Prompt, DefaultPrompt)
	if cfg.Session.Stdout == nil {
		cfg.Session.Stdout = os.Stdout
	}
	if cfg.Session.Stderr == nil {
		cfg.Session.Stderr = os.Stderr
	}
	cfg.Session.Stderr = NewErrorWriter(cfg.Session.Stderr)

	editor := cfg.Editor
	if editor == nil {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		editor = state
	}

	r := &REPL{
		prompt:      cfg.Prompt,
		historyFile: cfg.HistoryFile,
		banner:      cfg.Banner,
		editor:      editor,
		stdout:      cfg.Session.Stdout,
		logger:      logging.New("repl"),
	}

	if cfg.Session.ReadLine == nil {
		cfg.Session.ReadLine = r.readLine
	}
	r.session = script.New(cfg.Session)

	return r
}

// Session returns the underlying script session
func (r *REPL) Session() *script.Session {
	return r.session
}

func (r *REPL) readLine(prompt string) (string, error) {
	line, err := r.editor.Prompt(prompt)
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return "", script.ErrInputClosed
	}
	return line, err
}

// Run reads lines until EOF, quit/exit or cancellation and returns the
// process exit code.
func (r *REPL) Run(ctx context.Context) int {
	defer r.editor.Close()

	r.loadHistory()
	defer r.saveHistory()

	if r.banner {
		fmt.Fprintf(r.stdout, "%s - type 'help' for commands, 'quit' to leave\n", version.Short())
	}

	for {
		if ctx.Err() != nil {
			return script.ExitCanceled
		}

		line, err := r.editor.Prompt(r.prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.stdout)
			return script.ExitOK
		case err != nil:
			r.logger.Error("Failed to read input", "error", err)
			return script.ExitFailure
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		r.editor.AppendHistory(line)

		outcome := r.session.ExecuteLine(ctx, line)
		if outcome.IsFatal() {
			return outcome.Code
		}
	}
}

func (r *REPL) loadHistory() {
	path := r.resolvedHistoryFile()
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("Failed to open line history", "path", path, "error", err)
		}
		return
	}
	defer f.Close()

	if _, err := r.editor.ReadHistory(f); err != nil {
		r.logger.Warn("Failed to read line history", "path", path, "error", err)
	}
}

func (r *REPL) saveHistory() {
	path := r.resolvedHistoryFile()
	if path == "" {
		return
	}

	if err := mdwfilex.EnsureParentDir(path, 0o755); err != nil {
		r.logger.Warn("Failed to save line history", "path", path, "error", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		r.logger.Warn("Failed to save line history", "path", path, "error", err)
		return
	}
	defer f.Close()

	if _, err := r.editor.WriteHistory(f); err != nil {
		r.logger.Warn("Failed to write line history", "path", path, "error", err)
	}
}

func (r *REPL) resolvedHistoryFile() string {
	if r.historyFile == "" {
		return ""
	}
	path, err := mdwfilex.ExpandHome(r.historyFile)
	if err != nil {
		r.logger.Warn("Failed to resolve line history path", "path", r.historyFile, "error", err)
		return ""
	}
	return path
}
