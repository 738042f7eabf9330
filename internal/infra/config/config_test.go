package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "https://api.weather.gov", cfg.Upstream.ForecastBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Upstream.StaleAfter)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ForecastTTL)
	assert.Equal(t, time.Minute, cfg.Cache.RealtimeTTL)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `
http:
  address: ":9000"
  corsOrigins: ["https://gathering.surf"]
upstream:
  realtimeBaseUrl: "http://localhost:7000"
  timeout: 3s
cache:
  enabled: true
  addr: "localhost:6379"
  realtimeTtl: 30s
`))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://gathering.surf"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "http://localhost:7000", cfg.Upstream.RealtimeBaseURL)
	assert.Equal(t, "https://api.weather.gov", cfg.Upstream.ForecastBaseURL, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.RealtimeTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "http:\n  address: \":9000\"\n"))
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("FORECAST_URL", "http://forecast.test")
	t.Setenv("REALTIME_URL", "http://realtime.test")
	t.Setenv("QUALITY_URL", "http://quality.test")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("REDIS_URL", "valkey:6379")
	t.Setenv("CACHE_FORECAST_TTL", "2m")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("REALTIME_STALE_AFTER", "bogus")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Address)
	assert.Equal(t, "http://forecast.test", cfg.Upstream.ForecastBaseURL)
	assert.Equal(t, "http://realtime.test", cfg.Upstream.RealtimeBaseURL)
	assert.Equal(t, "http://quality.test", cfg.Upstream.WaterQualityBaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "valkey:6379", cfg.Cache.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ForecastTTL)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Upstream.StaleAfter, "unparsable durations are ignored")
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}\n"))
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.HTTP.Address)
}

func TestLoadRejectsBadFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "http: [unterminated"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }, want: "http.address"},
		{name: "rate limit", mutate: func(c *Config) { c.HTTP.RateLimit.Burst = 0 }, want: "burst"},
		{name: "cache without addr", mutate: func(c *Config) { c.Cache.Enabled = true }, want: "cache.addr"},
		{name: "negative ttl", mutate: func(c *Config) { c.Cache.RealtimeTTL = -time.Second }, want: "ttl"},
		{name: "timeout", mutate: func(c *Config) { c.Upstream.Timeout = 0 }, want: "upstream.timeout"},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, want: "metrics.path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
