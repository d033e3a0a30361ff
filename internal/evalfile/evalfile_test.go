package evalfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/reporter/internal/evalfile"
	"github.com/programme-lv/reporter/internal/gettext"
	"github.com/programme-lv/reporter/internal/score"
	"github.com/programme-lv/reporter/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uuid = "0c1d2e3f-4a5b-4c6d-8e7f-8091a2b3c4d5"

const results = `
[[evaluator]]
type = "UnitTestScorer"
weight = 0.5
name = "UnitTest Scorer"
score = 100.0
time = 0.25
brief = { text = "Ran %(total)d tests", kwargs = { total = 3 } }
detail = ["all good", { text = "%(n)s passed", kwargs = { n = "3" } }]

[[evaluator]]
type = "CodeStyleScorer"
score = 80.0
time = "n/a"
`

func TestParseAndCollect(t *testing.T) {
	f, err := evalfile.Parse(strings.NewReader(results))
	require.NoError(t, err)
	require.Len(t, f.Entries, 2)
	assert.Empty(t, f.DuplicateTypes())

	ws := f.Evaluators()
	require.Len(t, ws, 2)
	assert.Equal(t, 0.5, ws[0].Weight)
	assert.Equal(t, 1.0, ws[1].Weight)

	report, err := score.Collect(context.Background(), uuid, ws)
	require.NoError(t, err)
	assert.True(t, report.Accepted)
	require.Len(t, report.Partials, 2)

	p := report.Partials[0]
	assert.Equal(t, "UnitTestScorer", p.TypeName)
	assert.Equal(t, gettext.Raw("UnitTest Scorer"), p.Name)
	assert.Equal(t, variant.Float(0.25), p.Time)
	assert.Equal(t, "Ran 3 tests", gettext.Render(p.Brief))
	require.Len(t, p.Detail, 2)
	assert.Equal(t, gettext.Raw("all good"), p.Detail[0])
	assert.Equal(t, "3 passed", gettext.Render(p.Detail[1]))

	q := report.Partials[1]
	assert.Equal(t, variant.Text("n/a"), q.Time)
	assert.True(t, q.Brief.IsEmpty())
	assert.Empty(t, q.Detail)
}

func TestIntegerTime(t *testing.T) {
	f, err := evalfile.Parse(strings.NewReader("[[evaluator]]\ntype = \"T\"\ntime = 2\n"))
	require.NoError(t, err)
	report, err := score.Collect(context.Background(), uuid, f.Evaluators())
	require.NoError(t, err)
	assert.Equal(t, variant.Int(2), report.Partials[0].Time)
}

func TestErrorEntryFailsRun(t *testing.T) {
	f, err := evalfile.Parse(strings.NewReader(`
[[evaluator]]
type = "BrokenScorer"
error = "division by zero"
`))
	require.NoError(t, err)

	report, err := score.Collect(context.Background(), uuid, f.Evaluators())
	require.NoError(t, err)
	assert.False(t, report.Accepted)
	assert.Empty(t, report.Partials)
	assert.Equal(t, score.EvaluatorFailedText, report.Result.Text)
	assert.Equal(t, variant.Text("division by zero"), report.Result.Kwargs["error"])
}

func TestRunHonoursContext(t *testing.T) {
	f, err := evalfile.Parse(strings.NewReader("[[evaluator]]\ntype = \"T\"\n"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.Evaluators()[0].Evaluator.Run(ctx), context.Canceled)
}

func TestUnsupportedValuesAreRejected(t *testing.T) {
	for name, doc := range map[string]string{
		"bool time":     "time = true",
		"array time":    "time = [1, 2]",
		"datetime time": "time = 1979-05-27T07:32:00Z",
		"bool name":     "name = false",
		"table kwarg":   "brief = { text = \"x\", kwargs = { a = { b = 1 } } }",
		"odd table":     "brief = { message = \"x\" }",
	} {
		t.Run(name, func(t *testing.T) {
			f, err := evalfile.Parse(strings.NewReader("[[evaluator]]\ntype = \"T\"\n" + doc + "\n"))
			require.NoError(t, err)

			_, err = score.Collect(context.Background(), uuid, f.Evaluators())
			var kindErr *variant.UnsupportedKindError
			assert.True(t, errors.As(err, &kindErr), "got %v", err)
		})
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	_, err := evalfile.Parse(strings.NewReader("[[evaluator]]\nscore = 1.0\n"))
	assert.ErrorContains(t, err, "has no type")

	_, err = evalfile.Parse(strings.NewReader("[[evaluator]]\ntype = \"T\"\nbogus = 1\n"))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = evalfile.Parse(strings.NewReader("[[evaluator]\n"))
	assert.Error(t, err)
}

func TestDuplicateTypes(t *testing.T) {
	f, err := evalfile.Parse(strings.NewReader(`
[[evaluator]]
type = "A"
[[evaluator]]
type = "B"
[[evaluator]]
type = "A"
[[evaluator]]
type = "A"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, f.DuplicateTypes())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "results.toml")
	require.NoError(t, os.WriteFile(plain, []byte(results), 0o644))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := filepath.Join(dir, "results.toml.zst")
	require.NoError(t, os.WriteFile(compressed, enc.EncodeAll([]byte(results), nil), 0o644))
	require.NoError(t, enc.Close())

	for _, path := range []string{plain, compressed} {
		f, err := evalfile.Open(path)
		require.NoError(t, err, path)
		assert.Len(t, f.Entries, 2, path)
	}

	_, err = evalfile.Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
