package util

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
	"github.com/ariel-frischer/uxgate/internal/history"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check runs",
		Long: `Show recent check runs, newest first.

When history_max_entries is above 0, every consistency, completeness,
traceability and gate run is recorded in ~/.uxgate/state/history.yaml and the
file keeps at most that many entries. Recording is off by default.`,
		Example: `  uxgate history
  uxgate history -n 50 --format json
  uxgate history --status fail
  uxgate history --clear`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
	cmd.GroupID = shared.GroupInfo
	cmd.Flags().IntP("limit", "n", 10, "Number of entries to show (0 for all)")
	cmd.Flags().Bool("clear", false, "Remove all recorded runs")
	cmd.Flags().String("status", "", "Only show runs with this status (pass, fail, error)")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), err)
	}

	clearAll, _ := cmd.Flags().GetBool("clear")
	if clearAll && cmd.Flags().Changed("limit") {
		return shared.InputFailure(cmd.ErrOrStderr(),
			apperrors.InvalidFlagCombination("--clear --limit", "--clear removes every entry"))
	}

	stateDir, err := history.DefaultStateDir()
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(),
			apperrors.NewRuntimeError("cannot locate the history file: "+err.Error(),
				"Set HOME to a writable directory"))
	}

	if clearAll {
		if err := history.Clear(stateDir); err != nil {
			return shared.InputFailure(cmd.ErrOrStderr(),
				apperrors.WrapWithMessage(err, apperrors.Runtime, "clearing run history"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	entries, err := history.Recent(stateDir, 0)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(),
			apperrors.WrapWithMessage(err, apperrors.Runtime, "reading run history"))
	}
	return writeHistory(cmd.OutOrStdout(), filterEntries(entries, status, limit), format)
}

// filterEntries keeps entries with the given status (all when empty), up to limit.
func filterEntries(entries []history.Entry, status string, limit int) []history.Entry {
	var out []history.Entry
	for _, e := range entries {
		if limit > 0 && len(out) == limit {
			break
		}
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

func writeHistory(out io.Writer, entries []history.Entry, format validation.Format) error {
	switch format {
	case validation.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case validation.FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No recorded runs")
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-4s  %-12s  %3d issue(s)  %8s  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			statusLabel(e.Status), e.Command, e.Issues, e.Duration, e.Target)
	}
	return nil
}

func statusLabel(status string) string {
	switch status {
	case history.StatusPass:
		return color.GreenString("PASS")
	case history.StatusFail:
		return color.RedString("FAIL")
	default:
		return color.YellowString("ERR")
	}
}
