// Package validation tests issue rendering and result accounting.
// Related: internal/validation/issue.go
// Tags: validation, issue, result, status
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTypeTitle(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		check CheckType
		want  string
	}{
		"consistency":  {check: CheckConsistency, want: "Artifact consistency"},
		"completeness": {check: CheckCompleteness, want: "Implementation completeness"},
		"traceability": {check: CheckTraceability, want: "Traceability matrix"},
		"unknown":      {check: CheckType("other"), want: "other"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.check.Title())
		})
	}
}

func TestIssueRendering(t *testing.T) {
	t.Parallel()

	issue := Issue{
		Check:   CheckCompleteness,
		Source:  "matrix.md",
		Row:     3,
		Ref:     "REQ-9",
		Message: "Row 3 (REQ-9): blocked item missing owner",
		Hint:    "Rows with status blocked must fill owner",
	}

	assert.Equal(t, issue.Message, issue.String())
	assert.Equal(t, "matrix.md: Row 3 (REQ-9): blocked item missing owner", issue.Error())

	full := issue.FormatFull()
	assert.Contains(t, full, "Source: matrix.md")
	assert.Contains(t, full, "Row: 3 (REQ-9)")
	assert.Contains(t, full, "Hint: Rows with status blocked must fill owner")
	assert.NotContains(t, full, "Key:")

	bare := Issue{Message: "No completeness rows detected."}
	assert.Equal(t, "No completeness rows detected.", bare.Error())
	assert.Equal(t, "  Issue: No completeness rows detected.\n", bare.FormatFull())
}

func TestResult(t *testing.T) {
	t.Parallel()

	r := NewResult(CheckConsistency, "runs/r1")
	assert.True(t, r.Passed())
	assert.False(t, r.HasIssues())
	assert.Equal(t, StatusPass, r.Status())
	assert.NotNil(t, r.Issues)

	r.AddIssue(Issue{Check: CheckTraceability, Message: "first"})
	r.AddIssues([]Issue{{Message: "second"}, {Message: "third"}})

	assert.False(t, r.Passed())
	assert.Equal(t, StatusFail, r.Status())
	assert.Len(t, r.Issues, 3)
	for _, issue := range r.Issues {
		assert.Equal(t, CheckConsistency, issue.Check, "AddIssue stamps the result's check")
	}
	assert.Equal(t, "second", r.Issues[1].Message)
}
