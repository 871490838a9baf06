package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default values for the keys with no obvious zero value.
const (
	DefaultWorkers           = 4
	DefaultWatchDebounceMs   = 500
	DefaultHistoryMaxEntries = 0 // run history is opt-in
	DefaultLogLevel          = "warn"
)

// DefaultCompletenessPatterns locate the completeness matrix inside a run directory.
var DefaultCompletenessPatterns = []string{
	"**/14-implementation-completeness-matrix.{md,markdown,csv}",
}

// DefaultTraceabilityPatterns locate the traceability matrix inside a run directory.
var DefaultTraceabilityPatterns = []string{
	"**/traceability-matrix.{md,markdown,csv}",
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"allow_missing_artifacts": false,
		"strict_duplicates":       false,
		"output_format":           "text",
		"workers":                 DefaultWorkers,
		"completeness_patterns":   append([]string(nil), DefaultCompletenessPatterns...),
		"traceability_patterns":   append([]string(nil), DefaultTraceabilityPatterns...),
		"show_progress":           true,
		"watch_debounce_ms":       DefaultWatchDebounceMs,
		"history_max_entries":     DefaultHistoryMaxEntries,
		"log_level":               DefaultLogLevel,
	}
}

// GetDefaultConfigTemplate returns the defaults rendered as an indented JSON config file.
func GetDefaultConfigTemplate() string {
	data, err := json.MarshalIndent(GetDefaults(), "", "  ")
	if err != nil {
		// The defaults map only holds JSON-safe values.
		panic(fmt.Sprintf("marshal default config: %v", err))
	}
	return string(data) + "\n"
}

// WriteDefaultConfig writes the default template to path, creating parent directories.
// It refuses to overwrite an existing file unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
