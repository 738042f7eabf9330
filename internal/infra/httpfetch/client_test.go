package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/Austionian/gathering-surf/pkg/metrics"
)

func TestGetSendsHeadersAndReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gridpoints/MKX/90,67", r.URL.Path)
		require.Equal(t, "surf-test", r.Header.Get("User-Agent"))
		require.Equal(t, "application/geo+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	m := metrics.NewForTesting()
	client := New(Options{BaseURL: srv.URL + "/", UserAgent: "surf-test", Accept: "application/geo+json", Source: "nws", Metrics: m})

	body, err := client.Get(context.Background(), "/gridpoints/MKX/90,67")
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
	require.InDelta(t, 1, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("nws", "success")), 0)
}

func TestGetReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := metrics.NewForTesting()
	client := New(Options{BaseURL: srv.URL, Source: "ndbc", Metrics: m})

	_, err := client.Get(context.Background(), "/data/realtime2/45013.txt")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
	require.Contains(t, statusErr.Body, "maintenance")
	require.InDelta(t, 1, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("ndbc", "error")), 0)
}

func TestGetHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{BaseURL: srv.URL, Source: "nws"}).Get(ctx, "/")
	require.Error(t, err)
}
