package checks

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/matrix"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

// matrixCmdSpec describes one matrix validation command.
type matrixCmdSpec struct {
	name    string
	schema  matrix.Schema
	short   string
	long    string
	example string
}

var completenessSpec = matrixCmdSpec{
	name:   "completeness",
	schema: matrix.CompletenessSchema,
	short:  "Validate the implementation completeness matrix",
	long: `Validate the implementation completeness matrix (markdown table or CSV).

Every row needs a unique requirement_id and a status of implemented, blocked or
deferred. Implemented rows need evidence; blocked and deferred rows need reason,
owner and evidence.

Exit codes: 0 pass, 1 issues found, 2 unusable input.`,
	example: `  uxgate completeness runs/r1/14-implementation-completeness-matrix.md
  uxgate completeness matrix.csv --format yaml`,
}

var traceabilitySpec = matrixCmdSpec{
	name:   "traceability",
	schema: matrix.TraceabilitySchema,
	short:  "Validate the requirement-to-test traceability matrix",
	long: `Validate the traceability matrix (markdown table or CSV).

The matrix must contain at least one REQ-* row. Every REQ-* row must name an
automated test path, a code path and a CI run URL. A non-empty status must be
one of pass, fail, blocked or not_run.

Exit codes: 0 pass, 1 issues found, 2 unusable input.`,
	example: `  uxgate traceability runs/r1/traceability-matrix.csv
  uxgate traceability traceability-matrix.md --format json`,
}

func newMatrixCmd(spec matrixCmdSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s <matrix_path>", spec.name),
		Short:   spec.short,
		Long:    spec.long,
		Example: spec.example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, spec.schema, args[0])
		},
	}
	cmd.GroupID = shared.GroupChecks
	return cmd
}

func runMatrix(cmd *cobra.Command, schema matrix.Schema, path string) error {
	rt, err := shared.LoadRuntime(cmd)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), err)
	}

	started := time.Now()
	result, err := matrix.NewChecker(rt.Logger).Check(path, schema)
	if err != nil {
		err = shared.InputFailure(cmd.ErrOrStderr(), err)
		rt.Record(cmd.Name(), path, started, nil, err)
		return err
	}
	report := validation.NewReport(result)
	err = shared.Finish(cmd.OutOrStdout(), report, rt.Format)
	rt.Record(cmd.Name(), path, started, report, err)
	return err
}
