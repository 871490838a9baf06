package shared

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/uxgate/internal/config"
	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
	"github.com/ariel-frischer/uxgate/internal/history"
	"github.com/ariel-frischer/uxgate/internal/logging"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

// Runtime bundles what every check command needs: merged config, logger and report format.
type Runtime struct {
	Config *config.Configuration
	Logger *slog.Logger
	Format validation.Format
}

// AddGlobalFlags registers the persistent flags every command understands.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", config.ProjectConfigPath(), "Path to config file")
	cmd.PersistentFlags().String("format", "", "Report format: text, json or yaml (default from config: text)")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// LoadRuntime reads the global flags, loads config and applies flag overrides.
// An explicitly passed --config that does not exist is a configuration error.
func LoadRuntime(cmd *cobra.Command) (*Runtime, error) {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if noColor {
		color.NoColor = true
	}

	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(configPath); err != nil {
			return nil, apperrors.ConfigFileNotFound(configPath)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, apperrors.ConfigParseError(configPath, err)
	}

	formatName := cfg.OutputFormat
	if cmd.Flags().Changed("format") {
		formatName, _ = cmd.Flags().GetString("format")
	}
	format, err := validation.ParseFormat(formatName)
	if err != nil {
		return nil, apperrors.NewArgumentError(err.Error(),
			fmt.Sprintf("Use --format with one of: %v", validation.ValidFormats()))
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}

	return &Runtime{
		Config: cfg,
		Logger: logging.New(cmd.ErrOrStderr(), level),
		Format: format,
	}, nil
}

// OverrideBool copies a bool flag onto target when the user set it explicitly.
func OverrideBool(cmd *cobra.Command, name string, target *bool) {
	if cmd.Flags().Changed(name) {
		*target, _ = cmd.Flags().GetBool(name)
	}
}

// Finish writes the report to out and maps the verdict onto an exit code.
func Finish(out io.Writer, report *validation.Report, format validation.Format) error {
	if err := report.Write(out, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if !report.Passed() {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// InputFailure prints err with remediation to errOut and returns the input-error exit code.
func InputFailure(errOut io.Writer, err error) error {
	cliErr := apperrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = apperrors.Wrap(err, apperrors.Input)
	}
	apperrors.FprintError(errOut, cliErr)
	return NewExitError(ExitInputError)
}

// Record appends the outcome of a check run to the run history.
// History write failures are logged and never change the exit code.
func (rt *Runtime) Record(command, target string, started time.Time, report *validation.Report, runErr error) {
	if rt.Config.HistoryMaxEntries == 0 {
		return
	}
	stateDir, err := history.DefaultStateDir()
	if err != nil {
		rt.Logger.Warn("run history unavailable", "error", err)
		return
	}

	code := ExitCode(runErr)
	entry := history.Entry{
		Timestamp: started,
		Command:   command,
		Target:    target,
		Status:    history.StatusForExitCode(code),
		ExitCode:  code,
		Duration:  time.Since(started).Round(time.Millisecond).String(),
	}
	if report != nil {
		entry.Issues = len(report.Issues())
	}

	w := history.NewWriter(stateDir, rt.Config.HistoryMaxEntries)
	if err := w.Append(entry); err != nil {
		rt.Logger.Warn("failed to record run history", "error", err)
	}
}
