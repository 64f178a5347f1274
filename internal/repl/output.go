package repl

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var errorPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// ErrorWriter colours the "Error:" prefix of every complete line written to
// it. Partial lines are buffered until their newline arrives.
type ErrorWriter struct {
	mu  sync.Mutex
	out io.Writer
	buf bytes.Buffer
}

// NewErrorWriter wraps out
func NewErrorWriter(out io.Writer) *ErrorWriter {
	if w, ok := out.(*ErrorWriter); ok {
		return w
	}
	return &ErrorWriter{out: out}
}

// Write implements io.Writer
func (w *ErrorWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line, keep it for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			return len(p), nil
		}
		if _, err := io.WriteString(w.out, Colorize(line)); err != nil {
			return len(p), err
		}
	}
}

// Colorize highlights a leading "Error:" or "Input Error:" in line
func Colorize(line string) string {
	for _, prefix := range []string{"Error:", "Input Error:"} {
		if strings.HasPrefix(line, prefix) {
			return errorPrefix(prefix) + line[len(prefix):]
		}
	}
	return line
}
