// Package gatherer receives progress events of the report pipeline.
package gatherer

import (
	"time"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=gatherer.go -destination=mocks/mock_gatherer.go -package=mocks

// Gatherer is notified as a handin report moves through the pipeline.
// Implementations must not block for long and never fail the pipeline;
// delivery problems are logged by the implementation.
type Gatherer interface {
	StartReport(homeworkId string, evaluators int)
	FinishCollect(accepted bool, partials int, result string)
	SentReport(payloadBytes int, elapsed time.Duration)
	AckReport()
	FailReport(state string, err error)
}

type multi []Gatherer

// Multi forwards every event to all gs and waits until each has handled it.
func Multi(gs ...Gatherer) Gatherer {
	flat := make(multi, 0, len(gs))
	for _, g := range gs {
		if g == nil {
			continue
		}
		if m, ok := g.(multi); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, g)
	}
	return flat
}

func (m multi) each(fn func(Gatherer)) {
	var eg errgroup.Group
	for _, g := range m {
		eg.Go(func() error {
			fn(g)
			return nil
		})
	}
	_ = eg.Wait()
}

func (m multi) StartReport(homeworkId string, evaluators int) {
	m.each(func(g Gatherer) { g.StartReport(homeworkId, evaluators) })
}

func (m multi) FinishCollect(accepted bool, partials int, result string) {
	m.each(func(g Gatherer) { g.FinishCollect(accepted, partials, result) })
}

func (m multi) SentReport(payloadBytes int, elapsed time.Duration) {
	m.each(func(g Gatherer) { g.SentReport(payloadBytes, elapsed) })
}

func (m multi) AckReport() {
	m.each(func(g Gatherer) { g.AckReport() })
}

func (m multi) FailReport(state string, err error) {
	m.each(func(g Gatherer) { g.FailReport(state, err) })
}

// Nop discards all events.
type Nop struct{}

func (Nop) StartReport(string, int)         {}
func (Nop) FinishCollect(bool, int, string) {}
func (Nop) SentReport(int, time.Duration)   {}
func (Nop) AckReport()                      {}
func (Nop) FailReport(string, error)        {}
