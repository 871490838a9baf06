// Package history tests loading, saving, pruning and corruption recovery of the run history.
// Related: internal/history/history.go, internal/history/writer.go
// Tags: history, persistence, yaml, pruning
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(command string, code int) Entry {
	return Entry{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Command:   command,
		Target:    "runs/r1",
		Status:    StatusForExitCode(code),
		ExitCode:  code,
		Duration:  "12ms",
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content    *string
		wantLen    int
		wantBackup bool
	}{
		"missing file is empty history": {
			content: nil,
		},
		"valid file": {
			content: strPtr("entries:\n  - command: gate\n    target: runs/r1\n    status: pass\n    exit_code: 0\n    issues: 0\n    duration: 1ms\n"),
			wantLen: 1,
		},
		"empty file": {
			content: strPtr(""),
		},
		"corrupted file is backed up": {
			content:    strPtr("entries: [unclosed\n"),
			wantBackup: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, HistoryFileName)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			h, err := Load(dir)
			require.NoError(t, err)
			assert.NotNil(t, h.Entries)
			assert.Len(t, h.Entries, tt.wantLen)

			if tt.wantBackup {
				assert.FileExists(t, path+BackupSuffix)
				assert.NoFileExists(t, path)
			}
		})
	}
}

func TestSaveAndClear(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "state")
	want := &File{Entries: []Entry{entry("consistency", 1)}}
	require.NoError(t, Save(dir, want))
	assert.NoFileExists(t, filepath.Join(dir, HistoryFileName+".tmp"))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want.Entries, got.Entries)

	require.NoError(t, Clear(dir))
	got, err = Load(dir)
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
}

func TestWriter_AppendPrunes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, 3)
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Append(entry(fmt.Sprintf("run-%d", i), 0)))
	}

	h, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, h.Entries, 3)
	assert.Equal(t, "run-2", h.Entries[0].Command)
	assert.Equal(t, "run-4", h.Entries[2].Command)
}

func TestRecent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, 0)
	for _, cmd := range []string{"a", "b", "c"} {
		require.NoError(t, w.Append(entry(cmd, 0)))
	}

	tests := map[string]struct {
		limit int
		want  []string
	}{
		"all":           {limit: 0, want: []string{"c", "b", "a"}},
		"limited":       {limit: 2, want: []string{"c", "b"}},
		"limit too big": {limit: 10, want: []string{"c", "b", "a"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entries, err := Recent(dir, tt.limit)
			require.NoError(t, err)
			var got []string
			for _, e := range entries {
				got = append(got, e.Command)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusForExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusPass, StatusForExitCode(0))
	assert.Equal(t, StatusFail, StatusForExitCode(1))
	assert.Equal(t, StatusError, StatusForExitCode(2))
}

func strPtr(s string) *string { return &s }
