package checks

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/consistency"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

func newConsistencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consistency <artifact_dir>",
		Short: "Check that Consistency Keys agree across design artifacts",
		Long: `Check that Consistency Keys agree across the design-handoff artifacts of a run.

Each artifact declares canonical facts under a "## Consistency Keys" heading as
"- key: value" bullets. The check reports:
  - required artifacts that are missing (unless --allow-missing-artifacts)
  - required keys an artifact does not declare
  - keys whose normalized values differ between artifacts

Exit codes: 0 pass, 1 issues found, 2 unusable input.`,
		Example: `  # Validate a full run directory
  uxgate consistency runs/2024-06-01

  # Partial run: only reconcile the artifacts that exist
  uxgate consistency runs/wip --allow-missing-artifacts

  # Machine-readable output
  uxgate consistency runs/2024-06-01 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runConsistency,
	}
	cmd.GroupID = shared.GroupChecks
	addConsistencyFlags(cmd)
	return cmd
}

func addConsistencyFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("allow-missing-artifacts", false, "Do not report absent required artifacts (partial runs)")
	cmd.Flags().Bool("strict-duplicates", false, "Report keys declared twice in one Consistency Keys section")
}

func runConsistency(cmd *cobra.Command, args []string) error {
	rt, err := shared.LoadRuntime(cmd)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), err)
	}

	started := time.Now()
	result, err := checkConsistency(cmd.Context(), cmd, rt, args[0])
	if err != nil {
		err = shared.InputFailure(cmd.ErrOrStderr(), err)
		rt.Record(cmd.Name(), args[0], started, nil, err)
		return err
	}
	report := validation.NewReport(result)
	err = shared.Finish(cmd.OutOrStdout(), report, rt.Format)
	rt.Record(cmd.Name(), args[0], started, report, err)
	return err
}

// checkConsistency merges config and flags into checker options and runs the check.
func checkConsistency(ctx context.Context, cmd *cobra.Command, rt *shared.Runtime, dir string) (*validation.Result, error) {
	opts := consistency.Options{
		AllowMissingArtifacts: rt.Config.AllowMissingArtifacts,
		StrictDuplicates:      rt.Config.StrictDuplicates,
		Workers:               rt.Config.Workers,
	}
	shared.OverrideBool(cmd, "allow-missing-artifacts", &opts.AllowMissingArtifacts)
	shared.OverrideBool(cmd, "strict-duplicates", &opts.StrictDuplicates)

	if ctx == nil {
		ctx = context.Background()
	}
	return consistency.NewChecker(opts, rt.Logger).Check(ctx, dir)
}
