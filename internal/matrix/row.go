// Package matrix parses requirement matrices (markdown pipe-tables or CSV) and validates
// them against the completeness and traceability schemas.
package matrix

// Row is one data row of a matrix, keyed by header column name.
// Column order follows the header; duplicate header names keep the last cell.
type Row struct {
	// Index is the 1-based position of the row among the parsed rows.
	Index int
	// Extra holds CSV fields beyond the header width. They are kept but never validated.
	Extra []string

	columns []string
	cells   map[string]string
}

// NewRow builds a row from parallel column and value slices.
// Missing trailing values become empty strings.
func NewRow(index int, columns, values []string) Row {
	r := Row{Index: index, cells: make(map[string]string, len(columns))}
	for i, col := range columns {
		if _, seen := r.cells[col]; !seen {
			r.columns = append(r.columns, col)
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		r.cells[col] = value
	}
	return r
}

// Get returns the cell for column, or "" when the row has no such column.
func (r Row) Get(column string) string {
	return r.cells[column]
}

// Has reports whether the row carries column (even if the cell is empty).
func (r Row) Has(column string) bool {
	_, ok := r.cells[column]
	return ok
}

// Columns returns the column names in header order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Map returns a copy of the row as a plain map.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r.cells))
	for k, v := range r.cells {
		out[k] = v
	}
	return out
}
