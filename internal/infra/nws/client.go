// Package nws reads gridded marine forecasts from the National Weather Service API.
package nws

import (
	"context"
	"time"

	"github.com/Austionian/gathering-surf/internal/infra/httpfetch"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

const defaultBaseURL = "https://api.weather.gov"

// Client fetches gridpoint JSON documents.
type Client struct {
	http *httpfetch.Client
}

// NewClient builds a client. An empty baseURL targets api.weather.gov.
func NewClient(baseURL, userAgent string, timeout time.Duration, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpfetch.New(httpfetch.Options{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Accept:    "application/geo+json",
		Timeout:   timeout,
		Source:    "nws",
		Metrics:   m,
	})}
}

// FetchGridpoint returns the raw JSON for a gridpoint path such as "/gridpoints/MKX/90,67".
func (c *Client) FetchGridpoint(ctx context.Context, path string) ([]byte, error) {
	return c.http.Get(ctx, path)
}
