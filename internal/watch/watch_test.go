package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, changed chan<- struct{}) context.CancelFunc {
	t.Helper()

	w, err := New(path, func(ctx context.Context) {
		changed <- struct{}{}
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run() did not return after cancel")
		}
	})
	return cancel
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.sc")
	if err := os.WriteFile(path, []byte("1+1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 4)
	startWatcher(t, path, changed)

	if err := os.WriteFile(path, []byte("2+2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("onChange was not called after write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.sc")
	if err := os.WriteFile(path, []byte("1+1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 4)
	startWatcher(t, path, changed)

	if err := os.WriteFile(filepath.Join(dir, "other.sc"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Fatal("onChange called for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.sc")
	if err := os.WriteFile(path, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 4)
	cancel := startWatcher(t, path, changed)
	cancel()
}

func TestNewResolvesPath(t *testing.T) {
	w, err := New("calc.sc", func(context.Context) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q; want absolute", w.Path())
	}
}
