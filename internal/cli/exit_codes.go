package cli

import (
	"github.com/ariel-frischer/uxgate/internal/cli/shared"
)

// Exit codes for the uxgate CLI (re-exported from shared)
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates every check passed
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates at least one check reported issues
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInputError indicates a check could not run (missing paths, bad flags or config)
	ExitInputError = shared.ExitInputError
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
