package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

func createTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// stores runs a test against every Store implementation
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": createTestSQLiteStore(t),
		"memory": NewMemoryStore(),
	}
}

func seed(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	entries := []*Entry{
		{Timestamp: base, SessionID: "s1", Source: SourceREPL, Input: "1 + 1", Value: "2"},
		{Timestamp: base.Add(time.Minute), SessionID: "s1", Source: SourceREPL, Input: "1 / 0", Error: "[2] Division by zero"},
		{Timestamp: base.Add(2 * time.Minute), SessionID: "s2", Source: SourceEval, Input: "pi * 2", Value: "6.2831853"},
		{Timestamp: base.Add(3 * time.Minute), SessionID: "s2", Source: SourceTUI, Input: "x = 4", Value: "4"},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
}

func TestDefaultSQLiteConfig(t *testing.T) {
	if cfg := DefaultSQLiteConfig(); cfg.Path != "./data/history.db" {
		t.Errorf("Path = %v, want ./data/history.db", cfg.Path)
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	// Reopening must not fail on the existing schema
	again, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	again.Close()
}

func TestStore_RecordAssignsID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			entry := &Entry{SessionID: "s", Source: SourceREPL, Input: "2"}
			if err := store.Record(context.Background(), entry); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if entry.ID == "" {
				t.Error("ID should be assigned")
			}
			if entry.Timestamp.IsZero() {
				t.Error("Timestamp should be assigned")
			}
		})
	}
}

func TestStore_Query(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		inputs []string
	}{
		{"all newest first", Filter{}, []string{"x = 4", "pi * 2", "1 / 0", "1 + 1"}},
		{"session", Filter{SessionID: "s1"}, []string{"1 / 0", "1 + 1"}},
		{"source", Filter{Source: SourceEval}, []string{"pi * 2"}},
		{"errors only", Filter{ErrorsOnly: true}, []string{"1 / 0"}},
		{"contains", Filter{Contains: "1"}, []string{"1 / 0", "1 + 1"}},
		{"limit", Filter{Limit: 2}, []string{"x = 4", "pi * 2"}},
		{"offset", Filter{Offset: 3}, []string{"1 + 1"}},
		{"limit and offset", Filter{Limit: 1, Offset: 1}, []string{"pi * 2"}},
		{"start time", Filter{StartTime: time.Now().Add(-58*time.Minute - 30*time.Second)}, []string{"x = 4", "pi * 2"}},
		{"no match", Filter{SessionID: "missing"}, nil},
	}

	for name, store := range stores(t) {
		seed(t, store)
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				entries, err := store.Query(context.Background(), tt.filter)
				if err != nil {
					t.Fatalf("Query() error = %v", err)
				}
				var got []string
				for _, e := range entries {
					got = append(got, e.Input)
				}
				if len(got) != len(tt.inputs) {
					t.Fatalf("Query() = %q, want %q", got, tt.inputs)
				}
				for i := range got {
					if got[i] != tt.inputs[i] {
						t.Errorf("Query()[%d] = %q, want %q", i, got[i], tt.inputs[i])
					}
				}
			})
		}
	}
}

func TestStore_QueryRoundTripsFields(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)
			entries, err := store.Query(context.Background(), Filter{ErrorsOnly: true})
			if err != nil || len(entries) != 1 {
				t.Fatalf("Query() = %v, %v", entries, err)
			}
			e := entries[0]
			if e.Error != "[2] Division by zero" || e.Value != "" {
				t.Errorf("entry = %+v", e)
			}
			if e.Source != SourceREPL || e.SessionID != "s1" {
				t.Errorf("entry = %+v", e)
			}
			if !e.Failed() {
				t.Error("Failed() = false, want true")
			}
		})
	}
}

func TestStore_Stats(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)
			stats, err := store.Stats(context.Background())
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}

			if stats.Total != 4 {
				t.Errorf("Total = %v, want 4", stats.Total)
			}
			if stats.Errors != 1 {
				t.Errorf("Errors = %v, want 1", stats.Errors)
			}
			if stats.Sessions != 2 {
				t.Errorf("Sessions = %v, want 2", stats.Sessions)
			}
			if stats.BySource[SourceREPL] != 2 || stats.BySource[SourceEval] != 1 || stats.BySource[SourceTUI] != 1 {
				t.Errorf("BySource = %v", stats.BySource)
			}
			if stats.First.IsZero() || stats.Last.IsZero() || !stats.Last.After(stats.First) {
				t.Errorf("First = %v, Last = %v", stats.First, stats.Last)
			}
		})
	}
}

func TestStore_StatsEmpty(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			stats, err := store.Stats(context.Background())
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Total != 0 || !stats.First.IsZero() || len(stats.BySource) != 0 {
				t.Errorf("Stats() = %+v, want empty", stats)
			}
		})
	}
}

func TestStore_Prune(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, store)
			ctx := context.Background()

			deleted, err := store.Prune(ctx, 58*time.Minute+30*time.Second)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != 2 {
				t.Errorf("Prune() deleted = %v, want 2", deleted)
			}

			entries, _ := store.Query(ctx, Filter{})
			if len(entries) != 2 {
				t.Errorf("remaining = %v, want 2", len(entries))
			}
		})
	}
}

func TestRecorder_Hook(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, SourceREPL)

	recorder.Hook("6 * 7", mdwmathx.NewDecimalFromInt(42), nil)
	recorder.Hook("1 / 0", mdwmathx.Decimal{}, errors.New("[2] Division by zero"))

	entries, err := store.Query(context.Background(), Filter{SessionID: recorder.SessionID()})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(entries))
	}

	byInput := map[string]*Entry{}
	for _, e := range entries {
		byInput[e.Input] = e
	}
	if e := byInput["6 * 7"]; e == nil || e.Value != "42" || e.Source != SourceREPL {
		t.Errorf("success entry = %+v", e)
	}
	if e := byInput["1 / 0"]; e == nil || e.Error != "[2] Division by zero" || e.Value != "" {
		t.Errorf("error entry = %+v", e)
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var recorder *Recorder
	recorder.Hook("1", mdwmathx.NewDecimalFromInt(1), nil)
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == "" || a == b {
		t.Errorf("NewSessionID() = %q, %q; want distinct non-empty IDs", a, b)
	}
}
