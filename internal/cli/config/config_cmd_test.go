// Package config tests the config show, init and path commands.
// Related: internal/cli/config/config_cmd.go, internal/config/config.go
// Tags: cli, config, show, init, path, precedence
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/config"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

// execute runs uxgate with HOME pointed at a fresh directory. Tests using it cannot be parallel.
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := &cobra.Command{Use: "uxgate", SilenceErrors: true, SilenceUsage: true}
	root.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})
	shared.AddGlobalFlags(root)
	Register(root)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), shared.ExitCode(err)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigShow(t *testing.T) {
	path := writeConfigFile(t, `{"workers": 8, "strict_duplicates": true}`)

	t.Run("json", func(t *testing.T) {
		out, _, code := execute(t, "config", "show", "--config", path, "--format", "json")
		require.Equal(t, shared.ExitSuccess, code)

		var cfg config.Configuration
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, 8, cfg.Workers)
		assert.True(t, cfg.StrictDuplicates)
		assert.Equal(t, config.DefaultCompletenessPatterns, cfg.CompletenessPatterns)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, code := execute(t, "config", "show", "--config", path, "--format", "yaml")
		require.Equal(t, shared.ExitSuccess, code)

		var cfg config.Configuration
		require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, 8, cfg.Workers)
	})

	t.Run("text", func(t *testing.T) {
		out, _, code := execute(t, "config", "show", "--config", path)
		require.Equal(t, shared.ExitSuccess, code)
		assert.Contains(t, out, "workers: 8\n")
		assert.Contains(t, out, "strict_duplicates: true\n")
		assert.Contains(t, out, "output_format: text\n")
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("UXGATE_WORKERS", "2")
		out, _, code := execute(t, "config", "show", "--config", path)
		require.Equal(t, shared.ExitSuccess, code)
		assert.Contains(t, out, "workers: 2\n")
	})
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	tests := map[string]struct {
		content string
		wantErr string
	}{
		"syntax error": {
			content: "{\n  \"workers\": 4,\n  \"strict_duplicates\" true\n}",
			wantErr: ":3:",
		},
		"out of range": {
			content: `{"workers": 0}`,
			wantErr: "workers",
		},
		"unknown format": {
			content: `{"output_format": "xml"}`,
			wantErr: "must be one of: text, json, yaml",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			out, errOut, code := execute(t, "config", "show", "--config", path)
			assert.Equal(t, shared.ExitInputError, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestConfigInit(t *testing.T) {
	t.Run("creates the file with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.json")
		out, _, code := execute(t, "config", "init", "--config", path)
		require.Equal(t, shared.ExitSuccess, code)
		assert.Contains(t, out, "Created "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var cfg config.Configuration
		require.NoError(t, json.Unmarshal(data, &cfg))
		assert.Equal(t, config.DefaultWorkers, cfg.Workers)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := writeConfigFile(t, `{"workers": 9}`)
		_, errOut, code := execute(t, "config", "init", "--config", path)
		assert.Equal(t, shared.ExitInputError, code)
		assert.Contains(t, errOut, "already exists")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"workers": 9}`, string(data))
	})

	t.Run("force overwrites", func(t *testing.T) {
		path := writeConfigFile(t, `{"workers": 9}`)
		_, _, code := execute(t, "config", "init", "--config", path, "--force")
		require.Equal(t, shared.ExitSuccess, code)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"workers": 9`)
	})

	t.Run("user config goes under HOME", func(t *testing.T) {
		out, _, code := execute(t, "config", "init", "--user")
		require.Equal(t, shared.ExitSuccess, code)

		userPath, err := config.UserConfigPath()
		require.NoError(t, err)
		assert.Contains(t, out, userPath)
		assert.FileExists(t, userPath)
	})
}

func TestConfigPath(t *testing.T) {
	path := writeConfigFile(t, "{}")
	missing := filepath.Join(t.TempDir(), "absent.json")

	out, _, code := execute(t, "config", "path", "--config", path)
	require.Equal(t, shared.ExitSuccess, code)
	assert.Contains(t, out, "project: "+path+"\n")
	assert.Contains(t, out, "user:    ")
	assert.Contains(t, out, "(not found)")

	out, _, _ = execute(t, "config", "path", "--config", missing)
	assert.Contains(t, out, "project: "+missing+" (not found)\n")
}
