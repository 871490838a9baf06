package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/uxgate/internal/progress"
)

func TestStageStatus_String(t *testing.T) {
	t.Parallel()

	tests := map[progress.StageStatus]string{
		progress.StagePending:     "pending",
		progress.StageInProgress:  "in_progress",
		progress.StagePassed:      "passed",
		progress.StageFailed:      "failed",
		progress.StageErrored:     "errored",
		progress.StageStatus(99):  "unknown",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestStageInfo_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stage   progress.StageInfo
		wantErr string
	}{
		"valid":        {stage: progress.StageInfo{Name: "a", Number: 1, TotalStages: 1}},
		"no name":      {stage: progress.StageInfo{Number: 1, TotalStages: 1}, wantErr: "stage name cannot be empty"},
		"zero number":  {stage: progress.StageInfo{Name: "a", TotalStages: 1}, wantErr: "stage number must be > 0"},
		"zero total":   {stage: progress.StageInfo{Name: "a", Number: 1}, wantErr: "total stages must be > 0"},
		"out of range": {stage: progress.StageInfo{Name: "a", Number: 2, TotalStages: 1}, wantErr: "cannot exceed"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := tc.stage.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
