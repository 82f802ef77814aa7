// Package testutil provides shared helpers for the durwheel tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/storage"
)

// NewTestConfig creates a Config rooted in temp directories. All temp
// directories are cleaned up when the test completes.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	tempDir := CreateTempDir(t)

	cfg := config.New()
	cfg.DataDir = tempDir
	cfg.DatabasePath = filepath.Join(tempDir, "test.db")
	cfg.LogPath = filepath.Join(tempDir, "test.log")
	cfg.WatchEnabled = false
	cfg.Normalize()

	return cfg
}

// NewTestStorage creates an in-memory SQLite storage for testing.
// The storage is automatically closed when the test completes.
func NewTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	s, err := storage.NewInMemoryStorage()
	if err != nil {
		t.Fatalf("failed to create in-memory storage: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// CreateTempDir creates a temporary directory for testing.
// The directory is automatically removed when the test completes.
func CreateTempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "durwheel-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}

// CreateTempFile creates a temporary file with the given content.
// The file is automatically removed when the test completes.
func CreateTempFile(t *testing.T, content string) string {
	t.Helper()

	f, err := os.CreateTemp("", "durwheel-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		t.Fatalf("failed to write temp file: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	t.Cleanup(func() {
		os.Remove(f.Name())
	})

	return f.Name()
}

// ValidConfigYAML returns config file content with legal picker settings.
func ValidConfigYAML() string {
	return `mode: hourMinute
hour_interval: 1
minute_interval: 15
rounding: up
theme: nord
`
}
