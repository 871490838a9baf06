// uxgate - Mobile UX Handoff Validation Gate
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/uxgate

// Package cli provides Cobra-based CLI commands for the uxgate validation gate.
// It defines the checks (consistency, completeness, traceability, gate),
// configuration management (config show, init, path) and informational commands
// (schema, version).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/uxgate/internal/cli/checks"
	"github.com/ariel-frischer/uxgate/internal/cli/config"
	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/cli/util"
	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupChecks        = shared.GroupChecks
	GroupConfiguration = shared.GroupConfiguration
	GroupInfo          = shared.GroupInfo
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uxgate",
		Short: "Mobile UX handoff validation gate",
		Long: `Mobile UX handoff validation gate

Validates the artifacts of a UX handoff run before implementation starts:
Consistency Keys must agree across documents, the implementation completeness
matrix must account for every requirement, and the traceability matrix must tie
every REQ-* row to a test, the code and a CI run.

Exit codes: 0 all checks passed, 1 validation failed, 2 input error.

Source: https://github.com/ariel-frischer/uxgate`,
		Example: `  # Check Consistency Keys across a run directory
  uxgate consistency ./handoff/run-42

  # Validate the matrices directly
  uxgate completeness 14-implementation-completeness-matrix.md
  uxgate traceability qa/traceability-matrix.csv

  # Run every check, re-running on change
  uxgate gate ./handoff/run-42 --watch`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupChecks, Title: "Checks:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupInfo, Title: "Info:"})

	// Assign built-in help and completion to configuration group
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	shared.AddGlobalFlags(rootCmd)

	// Register commands from subpackages
	checks.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)

	return rootCmd
}

// Execute runs the root command.
// Errors that were not already reported as an exit code (unknown commands, bad flags)
// are printed to stderr and mapped to the input error exit code.
func Execute() error {
	return execute(NewRootCmd(), os.Args[1:])
}

func execute(rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil || shared.IsExitError(err) {
		return err
	}
	fmt.Fprint(rootCmd.ErrOrStderr(), apperrors.FormatSimpleError(err, apperrors.Argument))
	return shared.NewExitError(shared.ExitInputError)
}
