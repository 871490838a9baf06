package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is rendered.
type Format string

const (
	// FormatText is the human-readable PASS/FAIL listing.
	FormatText Format = "text"
	// FormatJSON renders the report as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the report as YAML.
	FormatYAML Format = "yaml"
)

// ValidFormats returns the accepted --format values.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// Report aggregates the results of every check run in one invocation.
// Results keep the order in which checks were added.
type Report struct {
	Results []*Result
}

// NewReport creates a report from the given results, skipping nil entries.
func NewReport(results ...*Result) *Report {
	r := &Report{}
	for _, res := range results {
		r.Add(res)
	}
	return r
}

// Add appends a result.
func (r *Report) Add(res *Result) {
	if res == nil {
		return
	}
	r.Results = append(r.Results, res)
}

// Issues returns every issue across all results, in result order.
func (r *Report) Issues() []Issue {
	var all []Issue
	for _, res := range r.Results {
		all = append(all, res.Issues...)
	}
	return all
}

// Passed is true iff no result carries an issue.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if res.HasIssues() {
			return false
		}
	}
	return true
}

// Status returns "PASS" or "FAIL" for the whole report.
func (r *Report) Status() string {
	if r.Passed() {
		return StatusPass
	}
	return StatusFail
}

// reportDocument is the machine-readable shape shared by the JSON and YAML renderers.
type reportDocument struct {
	Status  string           `json:"status" yaml:"status"`
	Results []resultDocument `json:"results" yaml:"results"`
}

type resultDocument struct {
	Check  CheckType `json:"check" yaml:"check"`
	Title  string    `json:"title" yaml:"title"`
	Source string    `json:"source" yaml:"source"`
	Status string    `json:"status" yaml:"status"`
	Issues []Issue   `json:"issues" yaml:"issues"`
}

func (r *Report) document() reportDocument {
	doc := reportDocument{Status: r.Status(), Results: []resultDocument{}}
	for _, res := range r.Results {
		issues := res.Issues
		if issues == nil {
			issues = []Issue{}
		}
		doc.Results = append(doc.Results, resultDocument{
			Check:  res.Check,
			Title:  res.Check.Title(),
			Source: res.Source,
			Status: res.Status(),
			Issues: issues,
		})
	}
	return doc
}

// Write renders the report to w in the requested format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return r.writeText(w)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// writeText prints one "<Title>: PASS|FAIL" line per result followed by a bulleted issue list.
func (r *Report) writeText(w io.Writer) error {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	for _, res := range r.Results {
		status := green(StatusPass)
		if res.HasIssues() {
			status = red(StatusFail)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", res.Check.Title(), status); err != nil {
			return err
		}
		for _, issue := range res.Issues {
			if _, err := fmt.Fprintf(w, "- %s\n", issue.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
