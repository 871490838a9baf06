package progress

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// formatStageCounter returns the [N/Total] stage counter string
func formatStageCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildStageMessage constructs the running message for a stage
func buildStageMessage(stage StageInfo, action string) string {
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	return fmt.Sprintf("%s %s %s", counter, action, lowerFirst(stage.Name))
}

// lowerFirst returns the string with the first letter lower-cased
func lowerFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// pluralIssues renders "1 issue" or "N issues"
func pluralIssues(n int) string {
	if n == 1 {
		return "1 issue"
	}
	return fmt.Sprintf("%d issues", n)
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor && symbols.Checkmark == "✓" {
		return color.New(color.FgGreen).Sprint(symbols.Checkmark)
	}
	return symbols.Checkmark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor && symbols.Failure == "✗" {
		return color.New(color.FgRed).Sprint(symbols.Failure)
	}
	return symbols.Failure
}
