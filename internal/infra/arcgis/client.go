// Package arcgis queries the beach monitoring feature service for water-quality advisories.
package arcgis

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Austionian/gathering-surf/internal/infra/httpfetch"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

const (
	defaultBaseURL   = "https://services1.arcgis.com"
	defaultQueryPath = "/arcgis/rest/services/Beach_Monitoring/FeatureServer/0/query"
)

// Client runs attribute queries against one feature layer.
type Client struct {
	http      *httpfetch.Client
	queryPath string
}

// NewClient builds a client; empty values fall back to the public beach layer.
func NewClient(baseURL, queryPath, userAgent string, timeout time.Duration, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(queryPath) == "" {
		queryPath = defaultQueryPath
	}
	return &Client{
		http: httpfetch.New(httpfetch.Options{
			BaseURL:   baseURL,
			UserAgent: userAgent,
			Accept:    "application/json",
			Timeout:   timeout,
			Source:    "arcgis",
			Metrics:   m,
		}),
		queryPath: "/" + strings.TrimLeft(queryPath, "/"),
	}
}

// QueryAttribute returns the raw feature-query JSON selecting field for one beach.
func (c *Client) QueryAttribute(ctx context.Context, beachName, field string) ([]byte, error) {
	params := url.Values{}
	params.Set("where", fmt.Sprintf("BEACH_NAME='%s'", strings.ReplaceAll(beachName, "'", "''")))
	params.Set("outFields", field)
	params.Set("returnGeometry", "false")
	params.Set("f", "json")
	return c.http.Get(ctx, c.queryPath+"?"+params.Encode())
}
