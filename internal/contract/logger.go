package contract

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Logger receives progress as checks run
type Logger interface {
	CheckStarted(id CheckID)
	CheckError(id CheckID, err error)
	CheckFinished(id CheckID, failed bool)
	CheckSkipped(id CheckID, reason string)
}

type nullLogger struct{}

func (nullLogger) CheckStarted(CheckID)         {}
func (nullLogger) CheckError(CheckID, error)    {}
func (nullLogger) CheckFinished(CheckID, bool)  {}
func (nullLogger) CheckSkipped(CheckID, string) {}

// ConsoleLogger writes colourised progress to Out
type ConsoleLogger struct {
	Out io.Writer
}

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

func (c *ConsoleLogger) CheckStarted(id CheckID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleLogger) CheckError(id CheckID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleLogger) CheckFinished(id CheckID, failed bool) {
	if failed {
		failColor.Fprintf(c.Out, "  FAILED: %s\n", id)
		return
	}
	passColor.Fprintf(c.Out, "  PASSED: %s\n", id)
}

func (c *ConsoleLogger) CheckSkipped(id CheckID, reason string) {
	if reason == "" {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
		return
	}
	skipColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
}

// PrintResults writes the summary line and the failed checks
func PrintResults(w io.Writer, results Results) {
	passed, failed, skipped := results.Counts()

	fmt.Fprintln(w)
	if len(results.Failures) > 0 {
		failColor.Fprintln(w, "FAILED CHECKS:")
		for _, f := range results.Failures {
			fmt.Fprintf(w, "  %s\n", f.CheckID)
			for _, err := range f.Errors {
				fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(err.Error(), "\n", "\n    "))
			}
		}
		fmt.Fprintln(w)
	}

	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if results.OK() {
		passColor.Fprintln(w, summary)
		return
	}
	failColor.Fprintln(w, summary)
}
