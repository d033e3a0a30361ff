// Package host drives one grading run from evaluator outcomes to the
// website's acknowledgement.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/programme-lv/reporter/internal/aescbc"
	"github.com/programme-lv/reporter/internal/apiclient"
	"github.com/programme-lv/reporter/internal/gatherer"
	"github.com/programme-lv/reporter/internal/gettext"
	"github.com/programme-lv/reporter/internal/score"
)

var ErrAlreadyExecuted = errors.New("host has already been executed")

// Context carries the per-run facts provided by the grading host.
type Context struct {
	BaseURL    string
	Key        []byte
	HandinID   string
	HomeworkID string
}

// Reporter delivers an encrypted report body.
type Reporter interface {
	SendReport(ctx context.Context, uuid string, sealed []byte) error
}

type Host struct {
	hctx     Context
	cipher   *aescbc.Cipher
	reporter Reporter
	gath     gatherer.Gatherer
	log      *slog.Logger

	executed atomic.Bool

	mu    sync.Mutex
	state State
}

type Option func(*Host)

// WithReporter replaces the website client built from Context.
func WithReporter(r Reporter) Option {
	return func(h *Host) { h.reporter = r }
}

func WithGatherer(g gatherer.Gatherer) Option {
	return func(h *Host) { h.gath = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.log = l }
}

func New(hctx Context, opts ...Option) (*Host, error) {
	ci, err := aescbc.New(hctx.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	h := &Host{
		hctx:   hctx,
		cipher: ci,
		gath:   gatherer.Nop{},
		log:    slog.Default(),
		state:  Idle,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With("handin", hctx.HandinID)
	if h.reporter == nil {
		h.reporter, err = apiclient.New(hctx.BaseURL, hctx.Key, apiclient.WithLogger(h.log))
		if err != nil {
			return nil, fmt.Errorf("failed to create api client: %w", err)
		}
	}
	return h, nil
}

func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Host) transition(s State) {
	h.mu.Lock()
	prev := h.state
	h.state = s
	h.mu.Unlock()
	h.log.Debug("report state changed", "from", prev, "to", s)
}

func (h *Host) fail(err error) error {
	state := h.State()
	h.transition(Failed)
	h.log.Error("report failed", "state", state, "error", err)
	h.gath.FailReport(state.String(), err)
	return err
}

// Run collects the evaluators, encrypts the report and delivers it once.
// Only the first call does any work; later calls return ErrAlreadyExecuted.
func (h *Host) Run(ctx context.Context, evaluators []score.Weighted) error {
	if !h.executed.CompareAndSwap(false, true) {
		return ErrAlreadyExecuted
	}

	h.gath.StartReport(h.hctx.HomeworkID, len(evaluators))
	h.transition(Collecting)
	report, err := score.Collect(ctx, h.hctx.HandinID, evaluators)
	if err != nil {
		return h.fail(fmt.Errorf("failed to collect scores: %w", err))
	}
	if report.Accepted {
		h.transition(Accepted)
	} else {
		h.transition(Rejected)
		h.log.Warn("handin rejected", "result", gettext.Render(report.Result))
	}
	h.warnMissingKeys(report)
	h.gath.FinishCollect(report.Accepted, len(report.Partials), gettext.Render(report.Result))

	payload := report.Encode()
	h.transition(Serialized)

	sealed, err := h.cipher.Encrypt(payload)
	if err != nil {
		return h.fail(fmt.Errorf("failed to encrypt report: %w", err))
	}
	h.transition(Encrypted)

	start := time.Now()
	err = h.reporter.SendReport(ctx, h.hctx.HandinID, sealed)
	if _, ok := apiclient.AsProtocol(err); ok || err == nil {
		h.transition(Sent)
		h.gath.SentReport(len(sealed), time.Since(start))
	}
	if err != nil {
		return h.fail(err)
	}

	h.transition(Acknowledged)
	h.log.Info("report acknowledged", "accepted", report.Accepted, "partials", len(report.Partials))
	h.gath.AckReport()
	return nil
}

func (h *Host) warnMissingKeys(r score.Report) {
	check := func(where string, m gettext.Message) {
		if missing := gettext.MissingKeys(m); len(missing) > 0 {
			h.log.Warn("message refers to missing kwargs", "where", where, "keys", missing)
		}
	}
	check("result", r.Result)
	check("compile error", r.CompileError)
	for _, p := range r.Partials {
		check(p.TypeName+" name", p.Name)
		check(p.TypeName+" brief", p.Brief)
		for _, d := range p.Detail {
			check(p.TypeName+" detail", d)
		}
	}
}
