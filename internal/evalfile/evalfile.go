// Package evalfile loads recorded evaluator outcomes from a TOML results
// file so that a finished grading run can be reported.
package evalfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/reporter/internal/gettext"
	"github.com/programme-lv/reporter/internal/score"
)

// Entry is one [[evaluator]] table.
//
// Name, Brief and Detail entries are either strings or {text, kwargs}
// tables. Time is an integer, a float, a string or absent.
type Entry struct {
	Type   string   `toml:"type"`
	Weight *float64 `toml:"weight"`
	Name   any      `toml:"name"`
	Score  float64  `toml:"score"`
	Time   any      `toml:"time"`
	Brief  any      `toml:"brief"`
	Detail []any    `toml:"detail"`
	Error  string   `toml:"error"`
}

type File struct {
	Entries []Entry `toml:"evaluator"`
}

// Open reads path, decompressing it first when it ends in .zst.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	file, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse decodes a results document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file File
	if err := dec.Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys in results file:\n%s", strict.String())
		}
		return nil, fmt.Errorf("failed to decode results file: %w", err)
	}
	for i, e := range file.Entries {
		if e.Type == "" {
			return nil, fmt.Errorf("evaluator #%d has no type", i+1)
		}
	}
	return &file, nil
}

// DuplicateTypes lists type names that occur more than once, in order of
// their second occurrence.
func (f *File) DuplicateTypes() []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	dups := mapset.NewThreadUnsafeSet[string]()
	var res []string
	for _, e := range f.Entries {
		if !seen.Add(e.Type) && dups.Add(e.Type) {
			res = append(res, e.Type)
		}
	}
	return res
}

// Evaluators turns the entries into weighted evaluators in file order.
// A missing weight means 1.
func (f *File) Evaluators() []score.Weighted {
	res := make([]score.Weighted, 0, len(f.Entries))
	for _, e := range f.Entries {
		weight := 1.0
		if e.Weight != nil {
			weight = *e.Weight
		}
		res = append(res, score.Weighted{Evaluator: newRecorded(e), Weight: weight})
	}
	return res
}

// Recorded replays an outcome captured by an earlier grading run.
type Recorded struct {
	typeName string
	outcome  score.Outcome
	err      error
}

func newRecorded(e Entry) *Recorded {
	r := &Recorded{
		typeName: e.Type,
		outcome: score.Outcome{
			Name:  message(e.Name),
			Score: e.Score,
			Brief: message(e.Brief),
			Time:  e.Time,
		},
	}
	if e.Detail != nil {
		r.outcome.Detail = make([]any, len(e.Detail))
		for i, d := range e.Detail {
			r.outcome.Detail[i] = message(d)
		}
	}
	if e.Error != "" {
		r.err = errors.New(e.Error)
	}
	return r
}

func (r *Recorded) TypeName() string { return r.typeName }

func (r *Recorded) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.err
}

func (r *Recorded) Outcome() score.Outcome { return r.outcome }

// message maps a {text, kwargs} table onto gettext.Lazy. Anything else is
// returned unchanged and left for the message converter to accept or reject.
func message(x any) any {
	tbl, ok := x.(map[string]any)
	if !ok {
		return x
	}
	lazy := gettext.Lazy{}
	for k, v := range tbl {
		switch k {
		case "text":
			lazy.Text = v
		case "kwargs":
			kw, ok := v.(map[string]any)
			if !ok {
				return x
			}
			lazy.Kwargs = kw
		default:
			return x
		}
	}
	return lazy
}
