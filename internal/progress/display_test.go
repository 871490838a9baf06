// Package progress_test tests progress display rendering, stage counters, checkmarks, and spinner lifecycle.
// Related: internal/progress/display.go
// Tags: progress, display, rendering, stages, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/uxgate/internal/progress"
)

var plainCaps = progress.TerminalCapabilities{}

func TestProgressDisplay_StartStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stage        progress.StageInfo
		wantContains []string
		wantErr      bool
	}{
		"first check": {
			stage:        progress.StageInfo{Name: "Artifact consistency", Number: 1, TotalStages: 3},
			wantContains: []string{"[1/3]", "Checking artifact consistency"},
		},
		"last check": {
			stage:        progress.StageInfo{Name: "Traceability matrix", Number: 3, TotalStages: 3},
			wantContains: []string{"[3/3]", "traceability matrix"},
		},
		"empty name": {
			stage:   progress.StageInfo{Number: 1, TotalStages: 3},
			wantErr: true,
		},
		"number beyond total": {
			stage:   progress.StageInfo{Name: "x", Number: 4, TotalStages: 3},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplayTo(&buf, plainCaps)
			err := display.StartStage(tc.stage)

			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, buf.String())
				assert.Nil(t, display.CurrentStage())
				return
			}
			require.NoError(t, err)
			for _, want := range tc.wantContains {
				assert.Contains(t, buf.String(), want)
			}
			require.NotNil(t, display.CurrentStage())
			assert.Equal(t, progress.StageInProgress, display.CurrentStage().Status)
		})
	}
}

func TestProgressDisplay_CompleteStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps   progress.TerminalCapabilities
		issues int
		want   string
	}{
		"passed ascii": {
			caps: plainCaps,
			want: "[OK] [2/3] Implementation completeness passed\n",
		},
		"failed one issue": {
			caps:   plainCaps,
			issues: 1,
			want:   "[FAIL] [2/3] Implementation completeness failed: 1 issue\n",
		},
		"failed many issues unicode without color": {
			caps:   progress.TerminalCapabilities{SupportsUnicode: true},
			issues: 4,
			want:   "✗ [2/3] Implementation completeness failed: 4 issues\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplayTo(&buf, tc.caps)
			stage := progress.StageInfo{Name: "Implementation completeness", Number: 2, TotalStages: 3}

			require.NoError(t, display.CompleteStage(stage, tc.issues))
			assert.Equal(t, tc.want, buf.String())
			assert.Nil(t, display.CurrentStage())
		})
	}
}

func TestProgressDisplay_FailStage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	display := progress.NewProgressDisplayTo(&buf, plainCaps)
	stage := progress.StageInfo{Name: "Traceability matrix", Number: 3, TotalStages: 3}

	require.NoError(t, display.StartStage(stage))
	require.NoError(t, display.FailStage(stage, errors.New("file not found: trace.md")))

	assert.Contains(t, buf.String(), "[FAIL] [3/3] Traceability matrix could not run: file not found: trace.md")
	assert.Nil(t, display.CurrentStage())
}

func TestProgressDisplay_SpinnerLifecycle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	display := progress.NewProgressDisplayTo(&buf, progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true})
	stage := progress.StageInfo{Name: "Artifact consistency", Number: 1, TotalStages: 1}

	require.NoError(t, display.StartStage(stage))
	display.StopSpinner()
	display.StopSpinner()
	require.NoError(t, display.CompleteStage(stage, 0))

	assert.Contains(t, buf.String(), "✓ [1/1] Artifact consistency passed")
}
