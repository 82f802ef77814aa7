// Package watcher reloads the picker when its config file changes on
// disk, so edits made outside the TUI take effect immediately.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ConfigChangedMsg is sent when the watched config file changes
type ConfigChangedMsg struct {
	Path string
}

// ErrorMsg is sent when the watcher encounters an error
type ErrorMsg struct {
	Error error
}

// Watcher monitors the config file and sends reload messages
type Watcher struct {
	watcher  *fsnotify.Watcher
	program  *tea.Program
	path     string
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	pending bool
}

// New creates a watcher for the given config file
func New(path string, debounce time.Duration) *Watcher {
	return &Watcher{
		path:     path,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}
}

// SetProgram sets the tea.Program for sending messages
func (w *Watcher) SetProgram(p *tea.Program) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.program = p
}

// Start begins watching for file changes
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	var err error
	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	// Watch the directory containing the file; editors often replace
	// the file instead of writing it in place.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	log.Debug().Str("path", w.path).Msg("config watcher started")
	go w.run()
	return nil
}

// Stop stops watching for file changes
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// run is the main event loop
func (w *Watcher) run() {
	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			w.pending = true
			w.mu.Unlock()

			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			w.mu.Lock()
			pending := w.pending
			w.pending = false
			w.mu.Unlock()

			if pending {
				log.Debug().Str("path", w.path).Msg("config file changed")
				w.sendMsg(ConfigChangedMsg{Path: w.path})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendMsg(ErrorMsg{Error: err})
		}
	}
}

// isConfigFile checks whether an event refers to the watched file
func (w *Watcher) isConfigFile(path string) bool {
	absPath, _ := filepath.Abs(path)
	absWatched, _ := filepath.Abs(w.path)
	if absPath == absWatched {
		return true
	}
	return filepath.Base(path) == filepath.Base(w.path)
}

// sendMsg safely sends a message to the tea.Program
func (w *Watcher) sendMsg(msg tea.Msg) {
	w.mu.Lock()
	program := w.program
	w.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}
