package matrix

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
	"github.com/ariel-frischer/uxgate/internal/logging"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

// Checker validates a matrix file against a schema.
type Checker struct {
	logger *slog.Logger
}

// NewChecker creates a checker. A nil logger discards log output.
func NewChecker(logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Checker{logger: logger}
}

// Check reads path, parses it according to its extension and validates it.
// A missing, directory or unreadable path is an Input CLIError; everything else is an issue.
func (c *Checker) Check(path string, schema Schema) (*validation.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.MatrixNotFound(path)
		}
		return nil, apperrors.MatrixUnreadable(path, err)
	}
	if info.IsDir() {
		return nil, apperrors.MatrixIsDirectory(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.MatrixUnreadable(path, err)
	}

	return c.CheckText(path, strings.ToValidUTF8(string(data), ""), schema), nil
}

// CheckText validates already-read matrix content. source names the file for
// format detection and reporting.
func (c *Checker) CheckText(source, text string, schema Schema) *validation.Result {
	result := validation.NewResult(schema.Check, source)
	format := FormatFromPath(source)

	parsed, err := ParseDetailed(text, format)
	for _, line := range parsed.Dropped {
		c.logger.Debug("dropped markdown row with mismatched cell count", "matrix", source, "line", line)
	}
	if err != nil {
		c.logger.Debug("csv parse stopped early", "matrix", source, "rows", len(parsed.Rows), "error", err)
		result.AddIssue(validation.Issue{
			Source:  source,
			Message: fmt.Sprintf("Malformed CSV: %v", err),
			Hint:    "Check quoting and delimiters; rows after the error were not validated",
		})
	}

	for _, issue := range Validate(parsed.Rows, schema) {
		issue.Source = source
		result.AddIssue(issue)
	}

	c.logger.Debug("matrix check complete",
		"matrix", source, "format", format, "rows", len(parsed.Rows), "issues", len(result.Issues))
	return result
}
