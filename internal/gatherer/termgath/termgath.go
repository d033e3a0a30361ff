package termgath

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

type TerminalGatherer struct {
	StartedAt time.Time
	out       io.Writer
}

func NewWriter(w io.Writer) *TerminalGatherer {
	return &TerminalGatherer{StartedAt: time.Now(), out: w}
}

var (
	okColor   = color.New(color.FgHiGreen)
	warnColor = color.New(color.FgHiYellow)
	errColor  = color.New(color.FgHiRed)
)

func (t *TerminalGatherer) StartReport(homeworkId string, evaluators int) {
	t.StartedAt = time.Now()
	fmt.Fprintln(t.out, "== Grading started ==")
	if homeworkId != "" {
		fmt.Fprintf(t.out, "homework: %s\n", homeworkId)
	}
	fmt.Fprintf(t.out, "evaluators: %d\n", evaluators)
}

func (t *TerminalGatherer) FinishCollect(accepted bool, partials int, result string) {
	fmt.Fprintln(t.out, "-- Evaluators finished --")
	if accepted {
		okColor.Fprintf(t.out, "accepted with %d partial scores\n", partials)
	} else {
		warnColor.Fprintln(t.out, "rejected")
	}
	if result != "" {
		fmt.Fprintf(t.out, "result: %s\n", result)
	}
}

func (t *TerminalGatherer) SentReport(payloadBytes int, elapsed time.Duration) {
	fmt.Fprintf(t.out, "-> Report sent (%d bytes, %s)\n", payloadBytes, elapsed.Round(time.Millisecond))
}

func (t *TerminalGatherer) AckReport() {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	okColor.Fprintf(t.out, "== Report acknowledged in %s ==\n", dur)
}

func (t *TerminalGatherer) FailReport(state string, err error) {
	errColor.Fprintf(t.out, "== Report failed while %s: %v ==\n", state, err)
}
