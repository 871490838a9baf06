package matrix

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/uxgate/internal/validation"
)

// Column names shared by both matrix kinds.
const (
	ColRequirementID = "requirement_id"
	ColStatus        = "status"
	ColCodePath      = "code_path"
)

// Schema declares what a matrix kind must contain.
// Rules run per row in this order: id presence, id uniqueness, critical-row fields,
// status vocabulary, then status-conditioned fields.
type Schema struct {
	Check       validation.CheckType
	Noun        string // used in "No <noun> rows detected."
	Description string

	RequiredColumns []string
	Statuses        []string

	// RequireID reports rows without a requirement id and skips the rest of their checks.
	RequireID bool
	// UniqueIDs reports repeated requirement ids.
	UniqueIDs bool

	// CriticalPrefix marks critical rows by case-insensitive id prefix. Empty disables it.
	CriticalPrefix string
	// RequireCriticalRows reports a matrix with no critical rows at all.
	RequireCriticalRows bool
	// CriticalFields must be non-empty on every critical row.
	CriticalFields []string

	// StatusOptional skips the vocabulary check when the status cell is empty.
	StatusOptional bool
	// StopOnInvalidStatus skips status-conditioned checks for rows with an invalid status.
	StopOnInvalidStatus bool
	// StatusFields maps a normalized status to the columns it requires.
	StatusFields map[string][]string
}

// RequiredFor returns the extra columns a row with the given status must fill.
func (s Schema) RequiredFor(status string) []string {
	return s.StatusFields[normalizeStatus(status)]
}

// ValidStatus reports whether status is in the schema vocabulary.
func (s Schema) ValidStatus(status string) bool {
	status = normalizeStatus(status)
	for _, v := range s.Statuses {
		if v == status {
			return true
		}
	}
	return false
}

// IsCritical reports whether a requirement id marks a critical row.
func (s Schema) IsCritical(id string) bool {
	if s.CriticalPrefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(id)), strings.ToUpper(s.CriticalPrefix))
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// CompletenessSchema validates the implementation completeness matrix.
// Every requirement must be implemented with evidence, or blocked/deferred with
// reason, owner and evidence.
var CompletenessSchema = Schema{
	Check:       validation.CheckCompleteness,
	Noun:        "completeness",
	Description: "Implementation completeness matrix: one row per design requirement with its implementation status",
	RequiredColumns: []string{
		ColRequirementID,
		"design_feature",
		ColStatus,
		ColCodePath,
		"evidence",
		"architecture_change",
		"reason",
		"owner",
	},
	Statuses:            []string{"implemented", "blocked", "deferred"},
	RequireID:           true,
	UniqueIDs:           true,
	StopOnInvalidStatus: true,
	StatusFields: map[string][]string{
		"implemented": {"evidence"},
		"blocked":     {"reason", "owner", "evidence"},
		"deferred":    {"reason", "owner", "evidence"},
	},
}

// TraceabilitySchema validates the requirement-to-test traceability matrix.
// Every REQ-* row must point at an automated test, the code and a CI run.
var TraceabilitySchema = Schema{
	Check:       validation.CheckTraceability,
	Noun:        "traceability",
	Description: "Traceability matrix: links each requirement to its flow, test case, code and CI evidence",
	RequiredColumns: []string{
		ColRequirementID,
		"requirement_summary",
		"screen_or_flow",
		"given_when_then_id",
		"test_case_id",
		"automated_test_path",
		ColCodePath,
		"ci_job_name",
		"ci_run_url",
		ColStatus,
	},
	Statuses:            []string{"pass", "fail", "blocked", "not_run"},
	CriticalPrefix:      "REQ-",
	RequireCriticalRows: true,
	CriticalFields:      []string{"automated_test_path", ColCodePath, "ci_run_url"},
	StatusOptional:      true,
}

// Schemas returns the built-in schemas keyed by check name.
func Schemas() map[validation.CheckType]Schema {
	return map[validation.CheckType]Schema{
		validation.CheckCompleteness: CompletenessSchema,
		validation.CheckTraceability: TraceabilitySchema,
	}
}

// SchemaFor returns the schema for a check name such as "completeness".
func SchemaFor(name string) (Schema, error) {
	s, ok := Schemas()[validation.CheckType(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return Schema{}, fmt.Errorf("no matrix schema for %q", name)
	}
	return s, nil
}
