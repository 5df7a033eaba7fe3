package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontctl.yaml")
	if err := os.WriteFile(path, []byte("catch_errors: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 16)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("catch_errors: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A save may be seen as several writes; wait for the final content.
	timeout := time.After(5 * time.Second)
	for updated := false; !updated; {
		select {
		case cfg := <-reloaded:
			updated = cfg.CatchErrors
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if w.Reloads() < 1 {
		t.Errorf("Reloads() = %d", w.Reloads())
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontctl.toml")

	w, err := NewWatcher(path, func(*Config, error) {})
	if err != nil {
		t.Fatal(err)
	}
	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
