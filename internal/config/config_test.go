// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go
// Tags: config, loading, merging, env-vars, json, precedence
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_Defaults isolates HOME so a real ~/.uxgate/config.json is never read.
// NO t.Parallel() due to environment changes.
func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.AllowMissingArtifacts)
	assert.False(t, cfg.StrictDuplicates)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultCompletenessPatterns, cfg.CompletenessPatterns)
	assert.Equal(t, DefaultTraceabilityPatterns, cfg.TraceabilityPatterns)
	assert.True(t, cfg.ShowProgress)
	assert.Equal(t, DefaultWatchDebounceMs, cfg.WatchDebounceMs)
	assert.Equal(t, DefaultHistoryMaxEntries, cfg.HistoryMaxEntries)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadFrom_Precedence(t *testing.T) {
	t.Parallel()

	global := writeConfig(t, t.TempDir(), `{
		"workers": 2,
		"strict_duplicates": true,
		"output_format": "yaml"
	}`)
	local := writeConfig(t, t.TempDir(), `{
		"workers": 8,
		"traceability_patterns": ["docs/trace.csv"]
	}`)

	cfg, err := LoadFrom(global, local)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers, "local overrides global")
	assert.True(t, cfg.StrictDuplicates, "global overrides defaults")
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, []string{"docs/trace.csv"}, cfg.TraceabilityPatterns)
	assert.Equal(t, DefaultCompletenessPatterns, cfg.CompletenessPatterns)
}

func TestLoadFrom_MissingFilesAreSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "also-none.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("UXGATE_WORKERS", "16")
	t.Setenv("UXGATE_ALLOW_MISSING_ARTIFACTS", "true")
	t.Setenv("UXGATE_OUTPUT_FORMAT", "JSON")
	t.Setenv("UXGATE_COMPLETENESS_PATTERNS", "a/matrix.md, b/matrix.csv")
	t.Setenv("UXGATE_LOG_LEVEL", "Info")

	local := writeConfig(t, t.TempDir(), `{"workers": 3}`)

	cfg, err := LoadFrom("", local)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Workers)
	assert.True(t, cfg.AllowMissingArtifacts)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, []string{"a/matrix.md", "b/matrix.csv"}, cfg.CompletenessPatterns)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFrom_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   string
		wantField string
	}{
		"workers too high": {
			content:   `{"workers": 100}`,
			wantField: "workers",
		},
		"workers zero": {
			content:   `{"workers": 0}`,
			wantField: "workers",
		},
		"bad output format": {
			content:   `{"output_format": "xml"}`,
			wantField: "output_format",
		},
		"empty pattern list": {
			content:   `{"completeness_patterns": []}`,
			wantField: "completeness_patterns",
		},
		"debounce too small": {
			content:   `{"watch_debounce_ms": 1}`,
			wantField: "watch_debounce_ms",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), tc.content)
			_, err := LoadFrom("", path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoadFrom_SyntaxError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "{\n  \"workers\": 4,\n  \"strict_duplicates\" true\n}")
	_, err := LoadFrom("", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load local config")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 3, verr.Line)
}

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		contains string
	}{
		"tilde prefix": {
			input:    "~/.uxgate/config.json",
			contains: ".uxgate/config.json",
		},
		"absolute path": {
			input:    "/absolute/path",
			contains: "/absolute/path",
		},
		"relative path": {
			input:    "./relative/path",
			contains: "./relative/path",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, expandHomePath(tc.input), tc.contains)
		})
	}
}
