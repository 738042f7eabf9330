package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// UpstreamConfig points at the public data sources.
type UpstreamConfig struct {
	ForecastBaseURL     string        `yaml:"forecastBaseUrl"`
	RealtimeBaseURL     string        `yaml:"realtimeBaseUrl"`
	WaterQualityBaseURL string        `yaml:"waterQualityBaseUrl"`
	WaterQualityPath    string        `yaml:"waterQualityPath"`
	UserAgent           string        `yaml:"userAgent"`
	Timeout             time.Duration `yaml:"timeout"`
	StaleAfter          time.Duration `yaml:"staleAfter"`
}

// CacheConfig controls the shared read-through cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Addr            string        `yaml:"addr"`
	Prefix          string        `yaml:"prefix"`
	ForecastTTL     time.Duration `yaml:"forecastTtl"`
	RealtimeTTL     time.Duration `yaml:"realtimeTtl"`
	WaterQualityTTL time.Duration `yaml:"waterQualityTtl"`
}

// MetricsConfig exposes the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	// PORT is what most hosting platforms inject.
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("FORECAST_URL"); v != "" {
		cfg.Upstream.ForecastBaseURL = v
	}
	if v := os.Getenv("REALTIME_URL"); v != "" {
		cfg.Upstream.RealtimeBaseURL = v
	}
	if v := os.Getenv("QUALITY_URL"); v != "" {
		cfg.Upstream.WaterQualityBaseURL = v
	}
	if v := os.Getenv("QUALITY_PATH"); v != "" {
		cfg.Upstream.WaterQualityPath = v
	}
	if v := os.Getenv("UPSTREAM_USER_AGENT"); v != "" {
		cfg.Upstream.UserAgent = v
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = parsed
		}
	}
	if v := os.Getenv("REALTIME_STALE_AFTER"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.StaleAfter = parsed
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_PREFIX"); v != "" {
		cfg.Cache.Prefix = v
	}
	if v := os.Getenv("CACHE_FORECAST_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.ForecastTTL = parsed
		}
	}
	if v := os.Getenv("CACHE_REALTIME_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.RealtimeTTL = parsed
		}
	}
	if v := os.Getenv("CACHE_WATER_QUALITY_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.WaterQualityTTL = parsed
		}
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Upstream: UpstreamConfig{
			ForecastBaseURL:     "https://api.weather.gov",
			RealtimeBaseURL:     "https://www.ndbc.noaa.gov",
			WaterQualityBaseURL: "https://services1.arcgis.com",
			WaterQualityPath:    "/arcgis/rest/services/Beach_Monitoring/FeatureServer/0/query",
			UserAgent:           "gathering-surf (https://gathering.surf)",
			Timeout:             10 * time.Second,
			StaleAfter:          24 * time.Hour,
		},
		Cache: CacheConfig{
			Enabled:         false,
			Prefix:          "surf",
			ForecastTTL:     5 * time.Minute,
			RealtimeTTL:     time.Minute,
			WaterQualityTTL: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Upstream.ForecastBaseURL) == "" {
		return errors.New("upstream.forecastBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Upstream.RealtimeBaseURL) == "" {
		return errors.New("upstream.realtimeBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Upstream.WaterQualityBaseURL) == "" {
		return errors.New("upstream.waterQualityBaseUrl cannot be empty")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	if c.Upstream.StaleAfter <= 0 {
		return errors.New("upstream.staleAfter must be positive")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when the cache is enabled")
	}
	if c.Cache.ForecastTTL < 0 || c.Cache.RealtimeTTL < 0 || c.Cache.WaterQualityTTL < 0 {
		return errors.New("cache ttl values cannot be negative")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}
