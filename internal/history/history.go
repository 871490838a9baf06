// Package history stores the outcome of past check runs.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status values for history entries.
const (
	StatusPass  = "pass"
	StatusFail  = "fail"
	StatusError = "error"
)

// Entry is one recorded check run.
type Entry struct {
	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Command is the check that ran: consistency, completeness, traceability or gate.
	Command string `json:"command" yaml:"command"`
	// Target is the run directory or matrix path the check was given.
	Target string `json:"target" yaml:"target"`
	// Status is pass, fail or error.
	Status string `json:"status" yaml:"status"`
	// ExitCode is the process exit code of the run.
	ExitCode int `json:"exit_code" yaml:"exit_code"`
	// Issues is the number of validation issues reported.
	Issues int `json:"issues" yaml:"issues"`
	// Duration is the run time in Go duration format (e.g. "15.3ms").
	Duration string `json:"duration" yaml:"duration"`
}

// StatusForExitCode maps an exit code onto an entry status.
func StatusForExitCode(code int) string {
	switch code {
	case 0:
		return StatusPass
	case 1:
		return StatusFail
	default:
		return StatusError
	}
}

// File is the YAML document holding all entries, oldest first.
type File struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// DefaultStateDir returns the directory holding the history file.
// Location: ~/.uxgate/state
func DefaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".uxgate", "state"), nil
}

// Load reads the history file from stateDir.
// A missing file yields empty history. A corrupted file is moved aside with
// BackupSuffix and replaced by empty history.
func Load(stateDir string) (*File, error) {
	historyPath := filepath.Join(stateDir, HistoryFileName)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Entries: []Entry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history File
	if err := yaml.Unmarshal(data, &history); err != nil {
		if err := os.Rename(historyPath, historyPath+BackupSuffix); err != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", err)
		}
		return &File{Entries: []Entry{}}, nil
	}
	if history.Entries == nil {
		history.Entries = []Entry{}
	}
	return &history, nil
}

// Save writes history to stateDir atomically, creating the directory if needed.
func Save(stateDir string, history *File) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	historyPath := filepath.Join(stateDir, HistoryFileName)
	tmpPath := historyPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}
	if err := os.Rename(tmpPath, historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history file: %w", err)
	}
	return nil
}

// Clear removes all entries.
func Clear(stateDir string) error {
	return Save(stateDir, &File{Entries: []Entry{}})
}
