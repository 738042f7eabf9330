package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/valkey-io/valkey-go"

	"github.com/Austionian/gathering-surf/internal/domain/forecast"
	"github.com/Austionian/gathering-surf/internal/domain/readthrough"
	"github.com/Austionian/gathering-surf/internal/domain/realtime"
	"github.com/Austionian/gathering-surf/internal/domain/waterquality"
	"github.com/Austionian/gathering-surf/internal/infra/arcgis"
	"github.com/Austionian/gathering-surf/internal/infra/cache"
	"github.com/Austionian/gathering-surf/internal/infra/config"
	"github.com/Austionian/gathering-surf/internal/infra/ndbc"
	"github.com/Austionian/gathering-surf/internal/infra/nws"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideMetrics() *metrics.Metrics {
	return metrics.New()
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{
		Timeout:  cfg.Upstream.Timeout,
		CacheTTL: cfg.Cache.ForecastTTL,
	}
}

func provideRealtimeConfig(cfg *config.Config) realtime.Config {
	return realtime.Config{
		Timeout:    cfg.Upstream.Timeout,
		StaleAfter: cfg.Upstream.StaleAfter,
		CacheTTL:   cfg.Cache.RealtimeTTL,
	}
}

func provideWaterQualityConfig(cfg *config.Config) waterquality.Config {
	return waterquality.Config{
		Timeout:  cfg.Upstream.Timeout,
		CacheTTL: cfg.Cache.WaterQualityTTL,
	}
}

// Client timeouts are a backstop; services bound each attempt with a context deadline.
func provideNWSClient(cfg *config.Config, m *metrics.Metrics) *nws.Client {
	return nws.NewClient(cfg.Upstream.ForecastBaseURL, cfg.Upstream.UserAgent, 2*cfg.Upstream.Timeout, m)
}

func provideNDBCClient(cfg *config.Config, m *metrics.Metrics) *ndbc.Client {
	return ndbc.NewClient(cfg.Upstream.RealtimeBaseURL, cfg.Upstream.UserAgent, 2*cfg.Upstream.Timeout, m)
}

func provideArcGISClient(cfg *config.Config, m *metrics.Metrics) *arcgis.Client {
	return arcgis.NewClient(cfg.Upstream.WaterQualityBaseURL, cfg.Upstream.WaterQualityPath, cfg.Upstream.UserAgent, 2*cfg.Upstream.Timeout, m)
}

func provideCacheStore(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) readthrough.Store {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return cache.NewMemoryStore(clock)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return cache.NewMemoryStore(clock)
		}
		store := cache.NewValkeyStore(client, cfg.Cache.Prefix)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey cache enabled", "addr", cfg.Cache.Addr)
			return store
		}
	}
	return cache.NewMemoryStore(clock)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
