// Package config_test tests JSON syntax checks and struct constraint reporting.
// Related: internal/config/validate.go
// Tags: config, validation, json, syntax
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantErr  bool
		wantLine int
	}{
		"valid":          {data: `{"workers": 2}`},
		"empty":          {data: "   \n"},
		"trailing comma": {data: "{\n  \"workers\": 2,\n}", wantErr: true, wantLine: 3},
		"array root":     {data: `["a"]`, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateJSONSyntaxFromBytes([]byte(tc.data), "cfg.json")
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tc.wantLine, verr.Line)
		})
	}
}

func TestValidateJSONSyntax_MissingFile(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateJSONSyntax(filepath.Join(t.TempDir(), "missing.json")))
}

func TestValidateJSONSyntax_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workers": }`), 0o644))

	err := ValidateJSONSyntax(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":1:")
}

func TestValidateConfigValues(t *testing.T) {
	t.Parallel()

	valid := func() Configuration {
		return Configuration{
			OutputFormat:         "text",
			Workers:              4,
			CompletenessPatterns: []string{"a.md"},
			TraceabilityPatterns: []string{"b.md"},
			WatchDebounceMs:      500,
			LogLevel:             "warn",
		}
	}

	tests := map[string]struct {
		mutate  func(c *Configuration)
		field   string
		message string
	}{
		"valid": {mutate: func(c *Configuration) {}},
		"format": {
			mutate:  func(c *Configuration) { c.OutputFormat = "html" },
			field:   "output_format",
			message: "must be one of: text, json, yaml",
		},
		"workers": {
			mutate:  func(c *Configuration) { c.Workers = 65 },
			field:   "workers",
			message: "must be at most 64",
		},
		"empty pattern entry": {
			mutate:  func(c *Configuration) { c.TraceabilityPatterns = []string{""} },
			field:   "traceability_patterns[0]",
			message: "is required",
		},
		"negative history size": {
			mutate:  func(c *Configuration) { c.HistoryMaxEntries = -1 },
			field:   "history_max_entries",
			message: "must be at least 0",
		},
		"log level": {
			mutate:  func(c *Configuration) { c.LogLevel = "trace" },
			field:   "log_level",
			message: "must be one of: debug, info, warn, error",
		},
		"no patterns": {
			mutate:  func(c *Configuration) { c.CompletenessPatterns = nil },
			field:   "completeness_patterns",
			message: "must list at least 1 entry",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(&cfg)
			err := ValidateConfigValues(&cfg, "")
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
			assert.Equal(t, "config: field '"+tc.field+"': "+tc.message, verr.Error())
		})
	}
}
