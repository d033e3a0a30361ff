package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/programme-lv/reporter/internal/aescbc"
	"github.com/programme-lv/reporter/internal/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handinId = "a8098c1a-f86e-11da-bd1a-00112444be1e"

func setupRun(t *testing.T, website string) (root, results string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, environment.WriteCommKey(environment.CommKeyPath(root), 32))

	results = filepath.Join(t.TempDir(), "results.toml")
	require.NoError(t, os.WriteFile(results, []byte(`
[[evaluator]]
type = "UnitTestScorer"
name = "Unit tests"
score = 75.0
`), 0o644))

	for _, k := range []string{"REPORTER_NATS_URL", "REPORTER_SQS_URL", "REPORTER_TIMEOUT", "RAILGUN_HWID"} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("RAILGUN_API_BASEURL", website)
	t.Setenv("RAILGUN_ROOT", root)
	t.Setenv("RAILGUN_HANDID", handinId)
	return root, results
}

func TestRunReport(t *testing.T) {
	var (
		mu   sync.Mutex
		body []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = b
		mu.Unlock()
		_, _ = io.WriteString(w, "OK")
	}))
	defer srv.Close()

	root, results := setupRun(t, srv.URL)
	require.NoError(t, runReport(context.Background(), results, "", false))

	key, err := environment.LoadCommKey(environment.CommKeyPath(root))
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	plain, err := aescbc.Decrypt(key, body)
	require.NoError(t, err)
	assert.Contains(t, string(plain), `"type": "UnitTestScorer"`)
	assert.Contains(t, string(plain), `"accepted": true`)
}

func TestRunReportRejectedByWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Handin is not running")
	}))
	defer srv.Close()

	_, results := setupRun(t, srv.URL)
	assert.ErrorContains(t, runReport(context.Background(), results, "", false), "Handin is not running")
}

func TestPrintReporter(t *testing.T) {
	key := []byte("k")
	sealed, err := aescbc.Encrypt(key, []byte(`{"uuid": "x"}`))
	require.NoError(t, err)

	var out bytes.Buffer
	p := &printReporter{key: key, out: &out}
	require.NoError(t, p.SendReport(context.Background(), "x", sealed))
	assert.Equal(t, "{\"uuid\": \"x\"}\n", out.String())
}
