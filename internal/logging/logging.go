// Package logging configures the global zerolog logger. The TUI owns
// the terminal, so everything is written to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at the given file and level. The
// returned closer must be called on shutdown.
func Setup(path, level string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(logFile).Level(lvl).With().Timestamp().Logger()
	return logFile, nil
}

// Disable routes the global logger to nowhere, for headless one-shot
// commands that must not touch the filesystem.
func Disable() {
	log.Logger = zerolog.Nop()
}
