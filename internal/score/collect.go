package score

import (
	"context"
	"errors"
	"fmt"

	"github.com/programme-lv/reporter/internal/gettext"
	"github.com/programme-lv/reporter/internal/jsontext"
	"github.com/programme-lv/reporter/internal/variant"
)

const (
	NoEvaluatorMessage  = "No evaluator configured, please contact TA."
	InvalidTextMessage  = "Evaluator produced invalid text, please contact TA."
	EvaluatorFailedText = "Evaluator %(evaluator)s failed: %(error)s"
)

// Outcome is what an evaluator exposes after Run. Name, Brief and each
// Detail entry are message-like (nil, string, []byte, gettext.Lazy or
// gettext.Message); Time is nil, an integer, a float or text.
type Outcome struct {
	Name   any
	Score  float64
	Brief  any
	Detail []any
	Time   any
}

// Evaluator scores one aspect of a handin.
type Evaluator interface {
	TypeName() string
	Run(ctx context.Context) error
	Outcome() Outcome
}

type Weighted struct {
	Evaluator Evaluator
	Weight    float64
}

// Collect runs every evaluator in order and assembles the report.
//
// A decode error in any evaluator output, or a failing Run, replaces the
// whole report with a rejected fail-safe document and is not returned.
// Values of unsupported kinds are returned as errors.
func Collect(ctx context.Context, uuid string, evaluators []Weighted) (Report, error) {
	if len(evaluators) == 0 {
		return FailSafe(uuid, gettext.Raw(NoEvaluatorMessage)), nil
	}

	report := Report{UUID: uuid, Partials: make([]PartialScore, 0, len(evaluators))}
	for _, w := range evaluators {
		if err := w.Evaluator.Run(ctx); err != nil {
			return FailSafe(uuid, evaluatorFailed(w.Evaluator.TypeName(), err)), nil
		}
		partial, err := convert(w)
		var decErr *jsontext.DecodeError
		if errors.As(err, &decErr) {
			return FailSafe(uuid, gettext.Raw(InvalidTextMessage)), nil
		}
		if err != nil {
			return Report{}, fmt.Errorf("evaluator %s: %w", w.Evaluator.TypeName(), err)
		}
		report.Partials = append(report.Partials, partial)
	}
	report.Accepted = len(report.Partials) > 0
	return report, nil
}

func convert(w Weighted) (PartialScore, error) {
	out := w.Evaluator.Outcome()
	p := NewPartialScore(w.Evaluator.TypeName())
	if err := jsontext.Validate(p.TypeName); err != nil {
		return p, fmt.Errorf("type name: %w", err)
	}
	p.Score = out.Score
	p.Weight = w.Weight

	var err error
	if p.Name, err = gettext.From(out.Name); err != nil {
		return p, fmt.Errorf("name: %w", err)
	}
	if p.Brief, err = gettext.From(out.Brief); err != nil {
		return p, fmt.Errorf("brief: %w", err)
	}
	p.Detail = make([]gettext.Message, 0, len(out.Detail))
	for i, d := range out.Detail {
		msg, err := gettext.From(d)
		if err != nil {
			return p, fmt.Errorf("detail[%d]: %w", i, err)
		}
		p.Detail = append(p.Detail, msg)
	}
	if p.Time, err = variant.FromAny(out.Time); err != nil {
		return p, fmt.Errorf("time: %w", err)
	}
	return p, nil
}

func evaluatorFailed(typeName string, err error) gettext.Message {
	name := typeName
	if jsontext.Validate(name) != nil {
		name = "?"
	}
	text := err.Error()
	if jsontext.Validate(text) != nil {
		text = "(undecodable error message)"
	}
	return gettext.Message{
		Text: EvaluatorFailedText,
		Kwargs: map[string]variant.Value{
			"evaluator": variant.Text(name),
			"error":     variant.Text(text),
		},
	}
}
