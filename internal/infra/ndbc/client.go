// Package ndbc reads realtime station reports from the National Data Buoy Center.
package ndbc

import (
	"context"
	"time"

	"github.com/Austionian/gathering-surf/internal/infra/httpfetch"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

const defaultBaseURL = "https://www.ndbc.noaa.gov"

// Client fetches fixed-column realtime2 text reports.
type Client struct {
	http *httpfetch.Client
}

// NewClient builds a client. An empty baseURL targets www.ndbc.noaa.gov.
func NewClient(baseURL, userAgent string, timeout time.Duration, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpfetch.New(httpfetch.Options{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Accept:    "text/plain",
		Timeout:   timeout,
		Source:    "ndbc",
		Metrics:   m,
	})}
}

// FetchReport returns the text report at path, e.g. "/data/realtime2/45013.txt".
func (c *Client) FetchReport(ctx context.Context, path string) (string, error) {
	body, err := c.http.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
