package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatchFileReparses(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "watched.rift")
	if err := os.WriteFile(testFile, []byte("print 1;"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	calls := make(chan struct{}, 16)
	parse := func() error {
		calls <- struct{}{}
		// Syntax errors must not end the watch
		return ErrParseFailed
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var errOut bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, testFile, parse, &errOut, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	wait := func(what string) {
		t.Helper()
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", what)
		}
	}
	wait("initial parse")

	// Changes to other files in the directory are ignored
	if err := os.WriteFile(filepath.Join(tmpDir, "other.rift"), []byte("x;"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(testFile, []byte("print 2;"), 0644); err != nil {
		t.Fatal(err)
	}
	wait("reparse after write")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}

	if !strings.Contains(errOut.String(), "watched.rift changed") {
		t.Errorf("expected change notice, got %q", errOut.String())
	}
	if strings.Contains(errOut.String(), "other.rift") {
		t.Errorf("expected unrelated file to be ignored, got %q", errOut.String())
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	var errOut bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope", "x.rift")

	err := watchFile(context.Background(), missing, func() error { return nil }, &errOut, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
	if !strings.Contains(errOut.String(), "cannot watch") {
		t.Errorf("expected watch error message, got %q", errOut.String())
	}
}
