// Package httpfetch is the shared GET client behind the upstream adapters.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Austionian/gathering-surf/pkg/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gathering-surf (github.com/Austionian/gathering-surf)"
	maxBodyBytes     = 8 << 20
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream request error: url=%s status=%d body=%s", e.URL, e.Status, e.Body)
}

// Options configure a Client.
type Options struct {
	BaseURL   string
	UserAgent string
	Accept    string
	Timeout   time.Duration
	// Source labels metrics, e.g. "nws".
	Source  string
	Metrics *metrics.Metrics
}

// Client issues GET requests against one upstream host.
type Client struct {
	baseURL    string
	userAgent  string
	accept     string
	source     string
	metrics    *metrics.Metrics
	httpClient *http.Client
}

// New builds a client; BaseURL must be non-empty.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		userAgent:  userAgent,
		accept:     opts.Accept,
		source:     opts.Source,
		metrics:    opts.Metrics,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get fetches baseURL+path and returns the body of a 2xx response.
func (c *Client) Get(ctx context.Context, path string) (body []byte, err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveUpstream(c.source, started, err) }()

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.source, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{URL: endpoint, Status: resp.StatusCode, Body: string(payload)}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.source, err)
	}
	return body, nil
}
