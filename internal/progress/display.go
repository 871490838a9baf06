package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	currentStage *StageInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a display writing to stderr
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return NewProgressDisplayTo(os.Stderr, caps)
}

// NewProgressDisplayTo creates a display writing to out
func NewProgressDisplayTo(out io.Writer, caps TerminalCapabilities) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// StartStage begins displaying progress for a check
func (p *ProgressDisplay) StartStage(stage StageInfo) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	stage.Status = StageInProgress
	p.currentStage = &stage
	msg := buildStageMessage(stage, "Checking")

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(p.out),
		)
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// CompleteStage stops the spinner and prints the check verdict
func (p *ProgressDisplay) CompleteStage(stage StageInfo, issues int) error {
	p.StopSpinner()

	counter := formatStageCounter(stage.Number, stage.TotalStages)
	if issues == 0 {
		mark := checkmark(p.symbols, p.capabilities.SupportsColor)
		fmt.Fprintf(p.out, "%s %s %s passed\n", mark, counter, stage.Name)
	} else {
		mark := failureMark(p.symbols, p.capabilities.SupportsColor)
		fmt.Fprintf(p.out, "%s %s %s failed: %s\n", mark, counter, stage.Name, pluralIssues(issues))
	}

	p.currentStage = nil
	return nil
}

// FailStage stops the spinner and displays that the check could not run
func (p *ProgressDisplay) FailStage(stage StageInfo, err error) error {
	p.StopSpinner()

	mark := failureMark(p.symbols, p.capabilities.SupportsColor)
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	fmt.Fprintf(p.out, "%s %s %s could not run: %v\n", mark, counter, stage.Name, err)

	p.currentStage = nil
	return nil
}

// CurrentStage returns the running stage, or nil between stages
func (p *ProgressDisplay) CurrentStage() *StageInfo {
	return p.currentStage
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
