package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/matrix"
	"github.com/ariel-frischer/uxgate/internal/progress"
	"github.com/ariel-frischer/uxgate/internal/validation"
	"github.com/ariel-frischer/uxgate/internal/watch"
)

var errInterrupted = errors.New("gate pass interrupted")

func newGateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate <artifact_dir>",
		Short: "Run every check over a run directory",
		Long: `Run the consistency, completeness and traceability checks over one run directory
and print a single report.

Matrix files are found inside the directory with the completeness_patterns and
traceability_patterns config globs unless --completeness or --traceability name
them. A matrix that cannot be found is reported as a missing tracking artifact.

With --watch the gate re-runs whenever a markdown or CSV file under the
directory changes, until interrupted.

Exit codes: 0 pass, 1 issues found, 2 unusable input.`,
		Example: `  # Full gate with discovered matrices
  uxgate gate runs/2024-06-01

  # Explicit matrix locations
  uxgate gate runs/r1 --completeness docs/completeness.csv --traceability docs/trace.md

  # Keep re-validating while editing
  uxgate gate runs/r1 --watch`,
		Args: cobra.ExactArgs(1),
		RunE: runGate,
	}
	cmd.GroupID = shared.GroupChecks
	addConsistencyFlags(cmd)
	cmd.Flags().String("completeness", "", "Path to the completeness matrix (default: discovered)")
	cmd.Flags().String("traceability", "", "Path to the traceability matrix (default: discovered)")
	cmd.Flags().BoolP("watch", "w", false, "Re-run when artifact or matrix files change")
	cmd.Flags().Bool("no-progress", false, "Hide per-check progress on stderr")
	return cmd
}

// gateRun holds everything one gate pass needs.
type gateRun struct {
	cmd              *cobra.Command
	rt               *shared.Runtime
	dir              string
	completenessPath string
	traceabilityPath string
	showProgress     bool
	out              io.Writer
	errOut           io.Writer
}

func runGate(cmd *cobra.Command, args []string) error {
	rt, err := shared.LoadRuntime(cmd)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), err)
	}

	g := &gateRun{
		cmd:          cmd,
		rt:           rt,
		dir:          args[0],
		showProgress: rt.Config.ShowProgress,
		out:          cmd.OutOrStdout(),
		errOut:       cmd.ErrOrStderr(),
	}
	g.completenessPath, _ = cmd.Flags().GetString("completeness")
	g.traceabilityPath, _ = cmd.Flags().GetString("traceability")
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		g.showProgress = false
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return g.pass(ctx)
	}
	return g.watch(ctx)
}

// run executes the three checks in order and returns the combined report.
// A check that cannot run at all aborts the pass with its input error.
func (g *gateRun) run(ctx context.Context) (*validation.Report, error) {
	display := g.newDisplay()
	report := validation.NewReport()

	stages := []struct {
		check validation.CheckType
		run   func() (*validation.Result, error)
	}{
		{validation.CheckConsistency, func() (*validation.Result, error) {
			return checkConsistency(ctx, g.cmd, g.rt, g.dir)
		}},
		{validation.CheckCompleteness, func() (*validation.Result, error) {
			return g.checkMatrix(matrix.CompletenessSchema, g.completenessPath, g.rt.Config.CompletenessPatterns)
		}},
		{validation.CheckTraceability, func() (*validation.Result, error) {
			return g.checkMatrix(matrix.TraceabilitySchema, g.traceabilityPath, g.rt.Config.TraceabilityPatterns)
		}},
	}

	for i, s := range stages {
		stage := progress.StageInfo{Name: s.check.Title(), Number: i + 1, TotalStages: len(stages)}
		if display != nil {
			if err := display.StartStage(stage); err != nil {
				return nil, err
			}
		}

		result, err := s.run()
		if err != nil {
			if display != nil {
				display.FailStage(stage, err)
			}
			return nil, err
		}
		if display != nil {
			display.CompleteStage(stage, len(result.Issues))
		}
		report.Add(result)
	}
	return report, nil
}

// checkMatrix validates an explicit matrix path, or the discovered one.
func (g *gateRun) checkMatrix(schema matrix.Schema, explicit string, patterns []string) (*validation.Result, error) {
	checker := matrix.NewChecker(g.rt.Logger)
	if explicit != "" {
		return checker.Check(explicit, schema)
	}

	path, err := discoverMatrix(g.dir, patterns)
	if err != nil {
		return nil, err
	}
	if path == "" {
		result := validation.NewResult(schema.Check, g.dir)
		result.AddIssue(validation.Issue{
			Source: g.dir,
			Message: fmt.Sprintf("Missing tracking artifact: no file matching %s in %s",
				strings.Join(patterns, ", "), g.dir),
			Hint: fmt.Sprintf("Add the %s matrix or pass --%s PATH", schema.Noun, schema.Noun),
		})
		return result, nil
	}
	g.rt.Logger.Debug("discovered matrix", "check", schema.Check, "path", path)
	return checker.Check(path, schema)
}

func (g *gateRun) newDisplay() *progress.ProgressDisplay {
	if !g.showProgress {
		return nil
	}
	caps := progress.TerminalCapabilities{}
	if g.errOut == os.Stderr {
		caps = progress.DetectTerminalCapabilities()
	}
	return progress.NewProgressDisplayTo(g.errOut, caps)
}

// pass runs the gate once, writes the report and records the outcome in the run history.
// A pass cut short by ctx cancellation prints and records nothing and returns errInterrupted.
func (g *gateRun) pass(ctx context.Context) error {
	started := time.Now()
	report, err := g.run(ctx)
	if err != nil && ctx.Err() != nil {
		g.rt.Logger.Debug("gate pass interrupted", "dir", g.dir, "error", err)
		return errInterrupted
	}
	if err != nil {
		err = shared.InputFailure(g.errOut, err)
	} else {
		err = shared.Finish(g.out, report, g.rt.Format)
	}
	g.rt.Record(g.cmd.Name(), g.dir, started, report, err)
	return err
}

// watch runs the gate once, then again after every debounced batch of changes.
// The exit code reflects the last completed pass.
func (g *gateRun) watch(ctx context.Context) error {
	if info, err := os.Stat(g.dir); err != nil || !info.IsDir() {
		return g.pass(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(g.rt.Config.WatchDebounceMs) * time.Millisecond
	w, err := watch.New(g.dir, debounce, g.rt.Logger)
	if err != nil {
		return shared.InputFailure(g.errOut, err)
	}
	defer w.Close()

	last := g.pass(ctx)
	if errors.Is(last, errInterrupted) {
		return shared.NewExitError(shared.ExitInputError)
	}
	fmt.Fprintf(g.errOut, "Watching %s for changes (Ctrl+C to stop)\n", g.dir)

	if err := w.Run(ctx, func(ctx context.Context, changed []string) {
		fmt.Fprintf(g.errOut, "\n%d file(s) changed, re-running gate\n", len(changed))
		last = g.rerun(ctx, last)
	}); err != nil {
		return err
	}
	return last
}

// rerun runs another watch pass. An interrupted pass keeps last.
func (g *gateRun) rerun(ctx context.Context, last error) error {
	result := g.pass(ctx)
	if errors.Is(result, errInterrupted) {
		return last
	}
	return result
}
