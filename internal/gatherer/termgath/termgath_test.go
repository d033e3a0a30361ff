package termgath_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/reporter/internal/gatherer/termgath"
	"github.com/stretchr/testify/assert"
)

func TestOutput(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	g := termgath.NewWriter(&buf)

	g.StartReport("hw-7", 3)
	g.FinishCollect(true, 3, "done")
	g.SentReport(128, 1500*time.Microsecond)
	g.AckReport()
	g.FailReport("sent", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "homework: hw-7")
	assert.Contains(t, out, "evaluators: 3")
	assert.Contains(t, out, "accepted with 3 partial scores")
	assert.Contains(t, out, "result: done")
	assert.Contains(t, out, "Report sent (128 bytes, 2ms)")
	assert.Contains(t, out, "Report acknowledged")
	assert.Contains(t, out, "Report failed while sent: boom")
}
