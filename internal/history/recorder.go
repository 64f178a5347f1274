package history

import (
	"context"
	"time"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
	"github.com/msto63/sccalc/pkg/core/logging"
)

// Recorder binds a store to one session and source. Its Hook method matches
// the session's evaluation hook, so every evaluated line is written as it
// happens. Store failures are logged, never surfaced to the user.
type Recorder struct {
	store     Store
	sessionID string
	source    Source
	timeout   time.Duration
	logger    *logging.Logger
}

// NewRecorder creates a recorder with a fresh session ID
func NewRecorder(store Store, source Source) *Recorder {
	return &Recorder{
		store:     store,
		sessionID: NewSessionID(),
		source:    source,
		timeout:   2 * time.Second,
		logger:    logging.New("history-recorder"),
	}
}

// SessionID returns the identifier shared by all recorded entries
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Store returns the underlying store
func (r *Recorder) Store() Store {
	return r.store
}

// Hook records one evaluation
func (r *Recorder) Hook(input string, value mdwmathx.Decimal, err error) {
	if r == nil || r.store == nil {
		return
	}

	entry := &Entry{
		SessionID: r.sessionID,
		Source:    r.source,
		Input:     input,
	}
	if err != nil {
		entry.Error = err.Error()
	} else {
		entry.Value = value.String()
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if recErr := r.store.Record(ctx, entry); recErr != nil {
		r.logger.Warn("Failed to record history entry", "error", recErr, "session", r.sessionID)
	}
}
