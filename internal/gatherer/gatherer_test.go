package gatherer_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/programme-lv/reporter/internal/gatherer"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) StartReport(string, int)         { r.add("start") }
func (r *recorder) FinishCollect(bool, int, string) { r.add("collect") }
func (r *recorder) SentReport(int, time.Duration)   { r.add("sent") }
func (r *recorder) AckReport()                      { r.add("ack") }
func (r *recorder) FailReport(string, error)        { r.add("fail") }

func TestMultiForwardsToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	g := gatherer.Multi(a, nil, gatherer.Multi(b), gatherer.Nop{})

	g.StartReport("hw", 1)
	g.FinishCollect(true, 1, "")
	g.SentReport(10, time.Millisecond)
	g.AckReport()
	g.FailReport("sent", errors.New("x"))

	want := []string{"start", "collect", "sent", "ack", "fail"}
	assert.Equal(t, want, a.events)
	assert.Equal(t, want, b.events)
}

func TestTrimToRect(t *testing.T) {
	assert.Equal(t, "", gatherer.TrimToRect("", 2, 2))
	assert.Equal(t, "ab", gatherer.TrimToRect("ab", 2, 2))
	assert.Equal(t, "ab[...]\ncd", gatherer.TrimToRect("abc\ncd", 2, 2))
	assert.Equal(t, "a\nb\n[...]", gatherer.TrimToRect("a\nb\nc\nd", 2, 2))

	// a multi-byte rune split by the width limit is dropped
	assert.Equal(t, "a[...]", gatherer.TrimToRect("aā", 1, 2))
	assert.False(t, strings.Contains(gatherer.TrimToRect("āāā", 1, 3), "�"))
}
