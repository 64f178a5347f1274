package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/msto63/sccalc/pkg/core/logging"

	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
)

// Source identifies the surface an evaluation came from
type Source string

const (
	SourceREPL Source = "repl"
	SourceTUI  Source = "tui"
	SourceEval Source = "eval"
)

// Entry represents a single evaluated input
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Source    Source    `json:"source"`
	Input     string    `json:"input"`
	Value     string    `json:"value,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Failed reports whether the evaluation produced an error
func (e *Entry) Failed() bool {
	return e.Error != ""
}

// Filter defines criteria for querying entries
type Filter struct {
	SessionID  string
	Source     Source
	Contains   string
	ErrorsOnly bool
	StartTime  time.Time
	EndTime    time.Time
	Limit      int
	Offset     int
}

// Stats summarises the stored history
type Stats struct {
	Total    int64
	Errors   int64
	Sessions int64
	BySource map[Source]int64
	First    time.Time
	Last     time.Time
}

// Store defines the interface for history persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// NewSessionID returns a fresh identifier grouping the entries of one run
func NewSessionID() string {
	return uuid.New().String()
}

func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *logging.Logger
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore opens (and if needed creates) the history database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if err := mdwfilex.EnsureParentDir(cfg.Path, 0755); err != nil {
		return nil, err
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, logger: logging.New("history-store")}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.logger.Debug("History store opened", "path", cfg.Path)
	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		source TEXT NOT NULL,
		input TEXT NOT NULL,
		value TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_timestamp ON evaluations(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_evaluations_session ON evaluations(session_id);
	CREATE INDEX IF NOT EXISTS idx_evaluations_source ON evaluations(source);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores one evaluation
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, timestamp, session_id, source, input, value, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, entry.SessionID, entry.Source, entry.Input,
		nullable(entry.Value), nullable(entry.Error))

	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Query retrieves entries based on filter criteria, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, session_id, source, input, value, error FROM evaluations WHERE 1=1`
	var args []interface{}

	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Contains != "" {
		query += " AND instr(input, ?) > 0"
		args = append(args, filter.Contains)
	}
	if filter.ErrorsOnly {
		query += " AND error IS NOT NULL"
	}
	if !filter.StartTime.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartTime)
	}
	if !filter.EndTime.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndTime)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	timer := s.logger.StartTimer("history query").WithField("limit", filter.Limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var value, errText sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.SessionID, &entry.Source,
			&entry.Input, &value, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Value = value.String
		entry.Error = errText.String
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	timer.WithField("rows", len(entries)).Stop()
	return entries, nil
}

// Stats returns history statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{BySource: make(map[Source]int64)}

	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(error), COUNT(DISTINCT session_id), MIN(timestamp), MAX(timestamp)
		FROM evaluations
	`).Scan(&stats.Total, &stats.Errors, &stats.Sessions, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to read history stats: %w", err)
	}
	stats.First = parseTimestamp(first)
	stats.Last = parseTimestamp(last)

	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM evaluations GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to read history stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source Source
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan history stats: %w", err)
		}
		stats.BySource[source] = count
	}

	return stats, rows.Err()
}

// Prune deletes entries older than the given age
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	deleted, _ := result.RowsAffected()

	s.logger.Debug("History pruned", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// MIN/MAX over DATETIME columns come back as text from go-sqlite3
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(value sql.NullString) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value.String); err == nil {
			return t
		}
	}
	return time.Time{}
}
