package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/config"
	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create uxgate configuration",
		Long: `Inspect and create uxgate configuration.

Configuration precedence (highest to lowest):
  1. Command-line flags
  2. Environment variables (UXGATE_*)
  3. Project config (--config, default .uxgate/config.json)
  4. User config (~/.uxgate/config.json)
  5. Built-in defaults`,
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.AddCommand(newShowCmd(), newInitCmd(), newPathCmd())
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  uxgate config show
  UXGATE_WORKERS=8 uxgate config show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := shared.LoadRuntime(cmd)
			if err != nil {
				return shared.InputFailure(cmd.ErrOrStderr(), err)
			}
			return writeConfig(cmd.OutOrStdout(), rt.Config, rt.Format)
		},
	}
}

func writeConfig(out io.Writer, cfg *config.Configuration, format validation.Format) error {
	switch format {
	case validation.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case validation.FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		bold := color.New(color.Bold).SprintFunc()
		rows := []struct {
			key   string
			value any
		}{
			{"allow_missing_artifacts", cfg.AllowMissingArtifacts},
			{"strict_duplicates", cfg.StrictDuplicates},
			{"output_format", cfg.OutputFormat},
			{"workers", cfg.Workers},
			{"completeness_patterns", cfg.CompletenessPatterns},
			{"traceability_patterns", cfg.TraceabilityPatterns},
			{"show_progress", cfg.ShowProgress},
			{"watch_debounce_ms", cfg.WatchDebounceMs},
			{"history_max_entries", cfg.HistoryMaxEntries},
			{"log_level", cfg.LogLevel},
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(out, "%s: %v\n", bold(r.key), r.value); err != nil {
				return err
			}
		}
		return nil
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Long: `Write a config file holding the built-in defaults.

By default the project config (.uxgate/config.json) is created. Use --user for
~/.uxgate/config.json. Existing files are left unchanged unless --force is set.`,
		Example: `  uxgate config init
  uxgate config init --user
  uxgate config init --force`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().Bool("user", false, "Create the user-level config (~/.uxgate/config.json)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config with defaults")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")

	path, err := targetPath(cmd, user)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), apperrors.Wrap(err, apperrors.Configuration))
	}
	if err := config.WriteDefaultConfig(path, force); err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), apperrors.NewConfigError(err.Error(),
			"Use --force to overwrite the existing file"))
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", green("✓"), path)
	return nil
}

// targetPath picks the user config path or the project path (--config when given).
func targetPath(cmd *cobra.Command, user bool) (string, error) {
	if user {
		return config.UserConfigPath()
	}
	if cmd.Flags().Changed("config") {
		return cmd.Flags().GetString("config")
	}
	return config.ProjectConfigPath(), nil
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file locations and whether they exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			userPath, err := config.UserConfigPath()
			if err != nil {
				userPath = "(unavailable: " + err.Error() + ")"
			}
			projectPath, _ := cmd.Flags().GetString("config")
			fmt.Fprintf(out, "user:    %s%s\n", userPath, existsSuffix(userPath))
			fmt.Fprintf(out, "project: %s%s\n", projectPath, existsSuffix(projectPath))
			return nil
		},
	}
}

func existsSuffix(path string) string {
	if _, err := os.Stat(path); err == nil {
		return ""
	}
	return " (not found)"
}
