// Package apiclient posts encrypted handin updates to the grading website.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/programme-lv/reporter/internal/aescbc"
	"github.com/programme-lv/reporter/internal/jsontext"
	"github.com/programme-lv/reporter/internal/score"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	cipher  *aescbc.Cipher
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the client used for requests. Its own Timeout is
// left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, key []byte, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	ci, err := aescbc.New(key)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cipher:  ci,
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Report posts the final score of a handin.
func (c *Client) Report(ctx context.Context, r score.Report) error {
	return c.post(ctx, "save result", r.UUID, actionPath("report", r.UUID), r.Encode())
}

// SendReport posts a report body that is already encrypted.
func (c *Client) SendReport(ctx context.Context, uuid string, sealed []byte) error {
	return c.send(ctx, "save result", uuid, actionPath("report", uuid), sealed)
}

// Start marks a handin as running.
func (c *Client) Start(ctx context.Context, uuid string) error {
	var sb strings.Builder
	sb.WriteString(`{"uuid": `)
	jsontext.WriteQuoted(&sb, strings.ToValidUTF8(uuid, "�"))
	sb.WriteString("}")
	return c.post(ctx, "start", uuid, actionPath("start", uuid), []byte(sb.String()))
}

// ProcLog uploads the exit code and output of the grading process.
// Undecodable bytes in stdout/stderr are replaced with U+FFFD.
func (c *Client) ProcLog(ctx context.Context, uuid string, exitCode int, stdout, stderr []byte) error {
	var sb strings.Builder
	sb.WriteString(`{"uuid": `)
	jsontext.WriteQuoted(&sb, strings.ToValidUTF8(uuid, "�"))
	sb.WriteString(`, "exitcode": `)
	sb.WriteString(strconv.Itoa(exitCode))
	sb.WriteString(`, "stdout": `)
	jsontext.WriteQuoted(&sb, strings.ToValidUTF8(string(stdout), "�"))
	sb.WriteString(`, "stderr": `)
	jsontext.WriteQuoted(&sb, strings.ToValidUTF8(string(stderr), "�"))
	sb.WriteString("}")
	return c.post(ctx, "proclog", uuid, actionPath("proclog", uuid), []byte(sb.String()))
}

func actionPath(action, uuid string) string {
	return "/handin/" + action + "/" + url.PathEscape(uuid) + "/"
}

func (c *Client) post(ctx context.Context, action, uuid, path string, payload []byte) error {
	body, err := c.cipher.Encrypt(payload)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s payload: %w", action, err)
	}
	return c.send(ctx, action, uuid, path, body)
}

// send posts body once. Only a response body equal to OK counts as success.
func (c *Client) send(ctx context.Context, action, uuid, path string, body []byte) error {
	u := c.baseURL + path
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	c.log.Debug("posting to remote api", "action", action, "url", u, "bytes", len(body))
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: u, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	c.log.Debug("remote api responded", "action", action, "status", resp.StatusCode,
		"elapsed", time.Since(start))

	if string(respBody) != SuccessMarker {
		return &ProtocolError{
			UUID:       uuid,
			Action:     action,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}
	return nil
}
