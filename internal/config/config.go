package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "UXGATE_"

// Configuration represents the uxgate CLI configuration
type Configuration struct {
	AllowMissingArtifacts bool     `koanf:"allow_missing_artifacts" json:"allow_missing_artifacts" yaml:"allow_missing_artifacts"`
	StrictDuplicates      bool     `koanf:"strict_duplicates" json:"strict_duplicates" yaml:"strict_duplicates"`
	OutputFormat          string   `koanf:"output_format" json:"output_format" yaml:"output_format" validate:"oneof=text json yaml"`
	Workers               int      `koanf:"workers" json:"workers" yaml:"workers" validate:"min=1,max=64"`
	CompletenessPatterns  []string `koanf:"completeness_patterns" json:"completeness_patterns" yaml:"completeness_patterns" validate:"min=1,dive,required"`
	TraceabilityPatterns  []string `koanf:"traceability_patterns" json:"traceability_patterns" yaml:"traceability_patterns" validate:"min=1,dive,required"`
	ShowProgress          bool     `koanf:"show_progress" json:"show_progress" yaml:"show_progress"` // Show a spinner per check during gate runs
	WatchDebounceMs       int      `koanf:"watch_debounce_ms" json:"watch_debounce_ms" yaml:"watch_debounce_ms" validate:"min=10,max=60000"`
	HistoryMaxEntries     int      `koanf:"history_max_entries" json:"history_max_entries" yaml:"history_max_entries" validate:"min=0,max=10000"` // 0 disables run history
	LogLevel              string   `koanf:"log_level" json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"completeness_patterns": true,
	"traceability_patterns": true,
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	globalPath, err := UserConfigPath()
	if err != nil {
		globalPath = ""
	}
	return LoadFrom(globalPath, localConfigPath)
}

// LoadFrom is Load with an explicit global config path. Empty paths are skipped.
func LoadFrom(globalPath, localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")
	localConfigPath = expandHomePath(localConfigPath)

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	if err := loadFile(k, globalPath); err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}
	if err := loadFile(k, localConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := ValidateConfigValues(&cfg, localConfigPath); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFile merges a JSON config file when it exists.
func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := ValidateJSONSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), json.Parser())
}

// envTransform converts environment variable names to config keys
// Example: UXGATE_WATCH_DEBOUNCE_MS -> watch_debounce_ms
func envTransform(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if listKeys[name] {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return name, items
	}
	return name, value
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
