package matrix

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/uxgate/internal/validation"
)

// Validate checks parsed rows against schema and returns every issue found.
// Rows are evaluated independently; a bad row never hides issues in another.
func Validate(rows []Row, schema Schema) []validation.Issue {
	v := &rowValidator{schema: schema, seen: map[string]struct{}{}}

	if len(rows) == 0 {
		v.add(validation.Issue{
			Message: fmt.Sprintf("No %s rows detected.", schema.Noun),
			Hint:    "Add a header line, a separator line and at least one data row",
		})
		return v.issues
	}

	v.checkColumns(rows[0])
	v.checkCriticalRows(rows)
	for _, row := range rows {
		v.checkRow(row)
	}
	return v.issues
}

type rowValidator struct {
	schema Schema
	seen   map[string]struct{}
	issues []validation.Issue
}

func (v *rowValidator) add(issue validation.Issue) {
	issue.Check = v.schema.Check
	v.issues = append(v.issues, issue)
}

// addRow records a row-scoped issue prefixed with "Row N (id): ".
func (v *rowValidator) addRow(row Row, id, msg, hint string) {
	prefix := fmt.Sprintf("Row %d", row.Index)
	if id != "" {
		prefix += fmt.Sprintf(" (%s)", id)
	}
	v.add(validation.Issue{
		Row:     row.Index,
		Ref:     id,
		Message: prefix + ": " + msg,
		Hint:    hint,
	})
}

// checkColumns compares the required columns with the first row's key set.
func (v *rowValidator) checkColumns(first Row) {
	var missing []string
	for _, col := range v.schema.RequiredColumns {
		if !first.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)
	v.add(validation.Issue{
		Message: fmt.Sprintf("Missing columns: %s", strings.Join(missing, ", ")),
		Hint:    "Add the missing columns to the header line",
	})
}

func (v *rowValidator) checkCriticalRows(rows []Row) {
	if !v.schema.RequireCriticalRows {
		return
	}
	for _, row := range rows {
		if v.schema.IsCritical(row.Get(ColRequirementID)) {
			return
		}
	}
	v.add(validation.Issue{
		Message: fmt.Sprintf("No %s* rows found.", strings.ToUpper(v.schema.CriticalPrefix)),
		Hint:    fmt.Sprintf("Critical requirements use ids starting with %s", v.schema.CriticalPrefix),
	})
}

func (v *rowValidator) checkRow(row Row) {
	s := v.schema
	id := strings.TrimSpace(row.Get(ColRequirementID))
	status := normalizeStatus(row.Get(ColStatus))

	if s.RequireID && id == "" {
		v.addRow(row, "", "missing requirement_id", "Every row needs a requirement_id")
		return
	}

	if s.UniqueIDs && id != "" {
		if _, dup := v.seen[id]; dup {
			v.addRow(row, id, "duplicate requirement_id", "Merge the rows or give each requirement its own id")
		}
		v.seen[id] = struct{}{}
	}

	if s.IsCritical(id) {
		for _, col := range s.CriticalFields {
			if strings.TrimSpace(row.Get(col)) == "" {
				v.addRow(row, id, "missing "+col, fmt.Sprintf("Critical rows must fill %s", col))
			}
		}
	}

	if status == "" && s.StatusOptional {
		return
	}
	if !s.ValidStatus(status) {
		v.addRow(row, id, fmt.Sprintf("invalid status '%s'", status),
			fmt.Sprintf("Use one of: %s", strings.Join(s.Statuses, ", ")))
		if s.StopOnInvalidStatus {
			return
		}
	}

	for _, col := range s.RequiredFor(status) {
		if strings.TrimSpace(row.Get(col)) == "" {
			v.addRow(row, id, fmt.Sprintf("%s item missing %s", status, col),
				fmt.Sprintf("Rows with status %s must fill %s", status, col))
		}
	}
}
