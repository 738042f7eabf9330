package waterquality

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Austionian/gathering-surf/internal/infra/cache"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

type stubClient struct {
	mu      sync.Mutex
	payload map[string]string
	err     error
	calls   int
	beaches []string
}

func (s *stubClient) QueryAttribute(_ context.Context, beachName, field string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.beaches = append(s.beaches, beachName)
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.payload[field]), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	mapStatusJSON = `{"features":[{"attributes":{"MAP_STATUS":"Open"}}]}`
	statusJSON    = `{"features":[{"attributes":{"STATUS":"No current advisory. Swim at your own risk."}}]}`
)

func TestGet(t *testing.T) {
	client := &stubClient{payload: map[string]string{
		"MAP_STATUS": mapStatusJSON,
		"STATUS":     statusJSON,
	}}
	svc := NewService(Config{}, client, nil, nil, discardLogger())

	report, err := svc.Get(context.Background(), "racine")
	require.NoError(t, err)
	assert.Equal(t, Report{
		Spot:             "Racine",
		WaterQuality:     "Open",
		WaterQualityText: "No current advisory. Swim at your own risk.",
	}, report)
	assert.Equal(t, []string{"North Beach", "North Beach"}, client.beaches)
}

func TestGetCachesReport(t *testing.T) {
	client := &stubClient{payload: map[string]string{
		"MAP_STATUS": mapStatusJSON,
		"STATUS":     statusJSON,
	}}
	store := cache.NewMemoryStore(nil)
	m := metrics.NewForTesting()
	svc := NewService(Config{CacheTTL: 5 * time.Minute}, client, store, m, discardLogger())

	_, err := svc.Get(context.Background(), "Atwater")
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), "Atwater")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)

	_, ok, err := store.Get(context.Background(), "water-quality-Atwater")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheLookups.WithLabelValues("water-quality", "miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheLookups.WithLabelValues("water-quality", "hit")), 0)
}

func TestGetUpstreamFailure(t *testing.T) {
	client := &stubClient{err: errors.New("status=500")}
	svc := NewService(Config{}, client, nil, nil, discardLogger())

	_, err := svc.Get(context.Background(), "Atwater")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamUnavailable))
}

func TestParseAttribute(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		err  bool
	}{
		{name: "ok", raw: mapStatusJSON, want: "Open"},
		{name: "invalid json", raw: `{`, err: true},
		{name: "no features", raw: `{"error":{"code":400}}`, err: true},
		{name: "empty features", raw: `{"features":[]}`, err: true},
		{name: "no attributes", raw: `{"features":[{}]}`, err: true},
		{name: "missing field", raw: `{"features":[{"attributes":{"STATUS":"x"}}]}`, err: true},
		{name: "not a string", raw: `{"features":[{"attributes":{"MAP_STATUS":3}}]}`, err: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAttribute([]byte(tc.raw), "MAP_STATUS")
			if tc.err {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedPayload))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
