// Package progress renders per-check progress for multi-check gate runs.
// It defines stage status tracking, terminal capability detection and
// display helpers including spinners and formatted PASS/FAIL lines.
package progress

import apperrors "github.com/ariel-frischer/uxgate/internal/errors"

// StageStatus represents the execution state of one check in a gate run
type StageStatus int

const (
	// StagePending indicates the check has not started yet
	StagePending StageStatus = iota
	// StageInProgress indicates the check is currently running
	StageInProgress
	// StagePassed indicates the check finished with no issues
	StagePassed
	// StageFailed indicates the check reported issues
	StageFailed
	// StageErrored indicates the check could not run (bad input)
	StageErrored
)

// String returns the string representation of StageStatus
func (s StageStatus) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageInProgress:
		return "in_progress"
	case StagePassed:
		return "passed"
	case StageFailed:
		return "failed"
	case StageErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// StageInfo represents one check of a gate run for progress display
type StageInfo struct {
	// Name is the human-readable check title (e.g., "Artifact consistency")
	Name string
	// Number is the current check number (1-based index)
	Number int
	// TotalStages is the number of checks in the run
	TotalStages int
	// Status is the current execution status
	Status StageStatus
}

// Validate checks that all StageInfo fields meet validation requirements
func (p StageInfo) Validate() error {
	if p.Name == "" {
		return apperrors.NewArgumentError("stage name cannot be empty")
	}
	if p.Number <= 0 {
		return apperrors.NewArgumentError("stage number must be > 0")
	}
	if p.TotalStages <= 0 {
		return apperrors.NewArgumentError("total stages must be > 0")
	}
	if p.Number > p.TotalStages {
		return apperrors.NewArgumentError("stage number cannot exceed total stages")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the progress stream is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
