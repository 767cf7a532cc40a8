// Package submissions fetches form submissions from the spreadsheet-backed
// form endpoint and derives the dashboard counters.
package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 16 << 20
)

var fetchTracer = otel.Tracer("submissions.internal.fetch")

// Config controls how the Client behaves.
type Config struct {
	ScriptURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	Now        func() time.Time
}

// Client performs the getData call against the form backend.
type Client struct {
	endpoint   *url.URL
	timeout    time.Duration
	httpClient *http.Client
	logger     *logging.Logger
	now        func() time.Time
}

// New creates a Client. The request timeout is applied per Fetch; the HTTP
// client itself carries no timeout so the two cannot disagree.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.ScriptURL)
	if raw == "" {
		return nil, ErrMissingScriptURL
	}
	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("submissions: parse script URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
		now:        now,
	}, nil
}

// Fetch retrieves every submission. There is exactly one attempt bounded by
// the configured timeout.
func (c *Client) Fetch(ctx context.Context) ([]Submission, error) {
	ctx, span := fetchTracer.Start(ctx, "submissions.fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	records, err := c.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Describe(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("submissions.records", len(records)))
	return records, nil
}

func (c *Client) fetch(parent context.Context) ([]Submission, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	target := c.requestURL()
	c.logger.Debug("fetching submissions", "url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("submissions: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
			return nil, ErrTimeout
		}
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&env); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
			return nil, ErrTimeout
		}
		return nil, &ResponseError{Message: "Invalid response format from server: " + err.Error()}
	}
	if env.Result != "success" {
		return nil, &ResponseError{Message: env.Message}
	}
	if env.Data == nil {
		env.Data = []Submission{}
	}
	return env.Data, nil
}

func (c *Client) requestURL() string {
	u := *c.endpoint
	q := u.Query()
	q.Set("action", "getData")
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}
