package history

import (
	"fmt"
	"sync"
)

// Writer appends entries to a history file and prunes it to MaxEntries.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain. Zero keeps everything.
	MaxEntries int

	mu sync.Mutex
}

// NewWriter creates a history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{StateDir: stateDir, MaxEntries: maxEntries}
}

// Append adds entry, dropping the oldest entries beyond MaxEntries.
func (w *Writer) Append(entry Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := Load(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := Save(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit below 1 returns all.
func Recent(stateDir string, limit int) ([]Entry, error) {
	history, err := Load(stateDir)
	if err != nil {
		return nil, err
	}
	n := len(history.Entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(history.Entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, history.Entries[i])
	}
	return out, nil
}
