// Package validation holds the issue and result types shared by every uxgate check,
// plus the report emitter that turns a set of results into a PASS/FAIL verdict.
package validation

import (
	"fmt"
	"strings"
)

// CheckType identifies which validator produced a result.
type CheckType string

const (
	// CheckConsistency is the cross-artifact Consistency Keys check.
	CheckConsistency CheckType = "consistency"
	// CheckCompleteness is the implementation completeness matrix check.
	CheckCompleteness CheckType = "completeness"
	// CheckTraceability is the traceability matrix check.
	CheckTraceability CheckType = "traceability"
)

// Title returns the heading printed in front of PASS/FAIL.
func (c CheckType) Title() string {
	switch c {
	case CheckConsistency:
		return "Artifact consistency"
	case CheckCompleteness:
		return "Implementation completeness"
	case CheckTraceability:
		return "Traceability matrix"
	default:
		return string(c)
	}
}

// Issue is a single blocking validation finding.
// Every issue fails the run; there is no severity.
type Issue struct {
	Check   CheckType `json:"check" yaml:"check"`
	Source  string    `json:"source,omitempty" yaml:"source,omitempty"` // artifact filename or matrix path
	Row     int       `json:"row,omitempty" yaml:"row,omitempty"`       // 1-based matrix row, 0 if not row-scoped
	Ref     string    `json:"ref,omitempty" yaml:"ref,omitempty"`       // requirement id of the row
	Key     string    `json:"key,omitempty" yaml:"key,omitempty"`       // canonical consistency key
	Message string    `json:"message" yaml:"message"`
	Hint    string    `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// String renders the issue the way it is listed under a FAIL line.
func (i Issue) String() string {
	return i.Message
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	if i.Source != "" {
		sb.WriteString(i.Source)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// FormatFull returns a detailed multi-line rendering used by verbose output.
func (i Issue) FormatFull() string {
	var sb strings.Builder

	if i.Source != "" {
		sb.WriteString(fmt.Sprintf("  Source: %s\n", i.Source))
	}
	if i.Row > 0 {
		sb.WriteString(fmt.Sprintf("  Row: %d", i.Row))
		if i.Ref != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", i.Ref))
		}
		sb.WriteString("\n")
	}
	if i.Key != "" {
		sb.WriteString(fmt.Sprintf("  Key: %s\n", i.Key))
	}
	sb.WriteString(fmt.Sprintf("  Issue: %s\n", i.Message))
	if i.Hint != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", i.Hint))
	}

	return sb.String()
}

// Result is the outcome of one check over its own file set.
type Result struct {
	Check  CheckType `json:"check" yaml:"check"`
	Source string    `json:"source" yaml:"source"`
	Issues []Issue   `json:"issues" yaml:"issues"`
}

// NewResult creates an empty result for the given check.
func NewResult(check CheckType, source string) *Result {
	return &Result{Check: check, Source: source, Issues: []Issue{}}
}

// Passed reports whether the check found no issues.
func (r *Result) Passed() bool {
	return len(r.Issues) == 0
}

// HasIssues returns true if there are any issues.
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue appends an issue, stamping it with the result's check type.
func (r *Result) AddIssue(issue Issue) {
	issue.Check = r.Check
	r.Issues = append(r.Issues, issue)
}

// AddIssues appends all issues in order.
func (r *Result) AddIssues(issues []Issue) {
	for _, issue := range issues {
		r.AddIssue(issue)
	}
}

// Status returns "PASS" or "FAIL".
func (r *Result) Status() string {
	if r.Passed() {
		return StatusPass
	}
	return StatusFail
}

// Verdict strings.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)
