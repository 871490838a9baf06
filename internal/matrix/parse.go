package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format is the on-disk encoding of a matrix file.
type Format string

const (
	// FormatMarkdown is a markdown pipe-table.
	FormatMarkdown Format = "markdown"
	// FormatCSV is comma-separated values with a header line.
	FormatCSV Format = "csv"
)

// FormatFromPath infers the format from the file extension.
// .md and .markdown are markdown; everything else is read as CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatCSV
	}
}

// ParseResult is the outcome of parsing a matrix file.
type ParseResult struct {
	Rows []Row
	// Dropped lists the 1-based source lines of markdown rows whose cell count
	// did not match the header.
	Dropped []int
}

// Parse parses text in the given format and returns its rows.
// CSV syntax errors stop parsing; the rows read before the error are returned with it.
func Parse(text string, format Format) ([]Row, error) {
	res, err := ParseDetailed(text, format)
	return res.Rows, err
}

// ParseDetailed is Parse plus bookkeeping about tolerated malformed rows.
func ParseDetailed(text string, format Format) (ParseResult, error) {
	text = normalizeNewlines(strings.TrimPrefix(text, "\ufeff"))
	switch format {
	case FormatMarkdown:
		return parseMarkdown(text), nil
	case FormatCSV:
		return parseCSV(text)
	default:
		return ParseResult{}, fmt.Errorf("unknown matrix format: %s", format)
	}
}

// normalizeNewlines turns \r\n and bare \r line endings into \n.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// parseMarkdown reads the pipe-table lines of text. The first table line is the header,
// the second is the separator, and every later line is a data row. Rows whose cell
// count differs from the header are dropped, which tolerates stray pipes in hand-edited tables.
func parseMarkdown(text string) ParseResult {
	type tableLine struct {
		number int
		text   string
	}

	var lines []tableLine
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") {
			lines = append(lines, tableLine{number: i + 1, text: trimmed})
		}
	}

	var res ParseResult
	if len(lines) < 2 {
		return res
	}

	header := splitPipeRow(lines[0].text)
	for _, line := range lines[2:] {
		cells := splitPipeRow(line.text)
		if len(cells) != len(header) {
			res.Dropped = append(res.Dropped, line.number)
			continue
		}
		res.Rows = append(res.Rows, NewRow(len(res.Rows)+1, header, cells))
	}
	return res
}

// splitPipeRow strips the outer pipes and returns the trimmed cells.
func splitPipeRow(line string) []string {
	parts := strings.Split(strings.Trim(line, "|"), "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseCSV reads a header-driven CSV. Short records are padded with empty cells and
// fields beyond the header width are kept in Row.Extra.
func parseCSV(text string) (ParseResult, error) {
	var res ParseResult

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("reading csv record: %w", err)
		}

		values := make([]string, len(record))
		for i, v := range record {
			values[i] = strings.TrimSpace(v)
		}
		row := NewRow(len(res.Rows)+1, header, values)
		if len(values) > len(header) {
			row.Extra = values[len(header):]
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}
