package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Austionian/gathering-surf/internal/domain/readthrough"
	"github.com/Austionian/gathering-surf/internal/domain/spot"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Service exposes the hourly forecast for a spot.
type Service interface {
	Get(ctx context.Context, spotName string) (Forecast, error)
}

// GridClient fetches raw gridpoint JSON.
type GridClient interface {
	FetchGridpoint(ctx context.Context, path string) ([]byte, error)
}

type service struct {
	cfg     Config
	client  GridClient
	store   readthrough.Store
	clock   clockwork.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService wires up the forecast domain.
func NewService(cfg Config, client GridClient, store readthrough.Store, clock clockwork.Clock, m *metrics.Metrics, logger *slog.Logger) Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &service{
		cfg:     cfg,
		client:  client,
		store:   store,
		clock:   clock,
		metrics: m,
		logger:  logger.With("component", "forecast.service"),
	}
}

func (s *service) Get(ctx context.Context, spotName string) (Forecast, error) {
	sp := spot.Lookup(spotName)
	opts := readthrough.Options{Kind: "forecast", TTL: s.cfg.CacheTTL, Logger: s.logger, Metrics: s.metrics}
	return readthrough.Fetch(ctx, s.store, sp.CacheKey("forecast"), opts, func(ctx context.Context) (Forecast, error) {
		return s.build(ctx, sp)
	})
}

func (s *service) build(ctx context.Context, sp spot.Spot) (Forecast, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.client.FetchGridpoint(fetchCtx, sp.ForecastPath)
	if err != nil {
		return Forecast{}, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "failed to fetch forecast", err)
	}

	fc, err := Assemble(sp, raw, s.clock.Now())
	if err != nil {
		s.logger.Error("forecast assembly failed", "spot", sp.Name, "error", err)
		return Forecast{}, err
	}
	s.logger.Info("forecast assembled", "spot", sp.Name, "hours", len(fc.WaveHeight), "current", fc.CurrentWaveHeight)
	return fc, nil
}
