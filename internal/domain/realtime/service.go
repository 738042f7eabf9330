package realtime

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

const (
	fetchAttempts     = 2
	defaultTimeout    = 10 * time.Second
	defaultStaleAfter = 24 * time.Hour
)

// Service exposes the latest station reading for a spot.
type Service interface {
	Get(ctx context.Context, spotName string) (Reading, error)
}

// ReportClient fetches a station text report.
type ReportClient interface {
	FetchReport(ctx context.Context, path string) (string, error)
}

type service struct {
	cfg     Config
	client  ReportClient
	store   readthrough.Store
	clock   clockwork.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService wires up the realtime domain.
func NewService(cfg Config, client ReportClient, store readthrough.Store, clock clockwork.Clock, m *metrics.Metrics, logger *slog.Logger) Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = defaultStaleAfter
	}
	return &service{
		cfg:     cfg,
		client:  client,
		store:   store,
		clock:   clock,
		metrics: m,
		logger:  logger.With("component", "realtime.service"),
	}
}

func (s *service) Get(ctx context.Context, spotName string) (Reading, error) {
	sp := spot.Lookup(spotName)
	opts := readthrough.Options{Kind: "realtime", TTL: s.cfg.CacheTTL, Logger: s.logger, Metrics: s.metrics}
	return readthrough.Fetch(ctx, s.store, sp.CacheKey("realtime"), opts, func(ctx context.Context) (Reading, error) {
		return s.resolve(ctx, sp)
	})
}

type state int

const (
	stateTryPrimary state = iota
	stateStaleRetryFallback
	stateFailRetryFallback
	stateTryFallback
	stateSuccess
	stateFail
)

// resolve walks primary station -> optional fallback station.
func (s *service) resolve(ctx context.Context, sp spot.Spot) (Reading, error) {
	var (
		reading Reading
		err     error
		stale   bool
	)
	st := stateTryPrimary
	for {
		switch st {
		case stateTryPrimary:
			reading, err = s.load(ctx, sp, sp.RealtimePath)
			st = s.afterPrimary(sp, reading, err)
			if st == stateSuccess && !sp.HasBuoy {
				reading.LoadedFromFallback = true
				s.metrics.ObserveFallback("no_buoy")
			}

		case stateStaleRetryFallback:
			stale = true
			s.metrics.ObserveFallback("stale")
			s.logger.Warn("realtime reading is stale, trying fallback station", "spot", sp.Name, "as_of", reading.AsOfTime, "fallback", sp.FallbackRealtimePath)
			st = stateTryFallback

		case stateFailRetryFallback:
			s.metrics.ObserveFallback("failed")
			s.logger.Warn("primary station unavailable, trying fallback station", "spot", sp.Name, "error", err, "fallback", sp.FallbackRealtimePath)
			st = stateTryFallback

		case stateTryFallback:
			reading, err = s.load(ctx, sp, sp.FallbackRealtimePath)
			if err != nil {
				if stale {
					err = apperrors.Wrap(apperrors.CodeStaleData, "realtime reading is stale and the fallback station failed", err)
				}
				st = stateFail
				continue
			}
			reading.LoadedFromFallback = true
			st = stateSuccess

		case stateSuccess:
			return reading, nil

		case stateFail:
			s.logger.Error("realtime reading unavailable", "spot", sp.Name, "error", err)
			return Reading{}, err
		}
	}
}

// afterPrimary decides where a primary attempt leads.
func (s *service) afterPrimary(sp spot.Spot, reading Reading, err error) state {
	switch {
	case err != nil:
		if apperrors.IsCode(err, apperrors.CodeUpstreamUnavailable) && sp.HasFallback() {
			return stateFailRetryFallback
		}
		return stateFail
	case !sp.HasBuoy:
		// land stations are the fallback source already
		return stateSuccess
	case s.isStale(reading):
		if sp.HasFallback() {
			return stateStaleRetryFallback
		}
		s.logger.Warn("realtime reading is stale and no fallback station exists", "spot", sp.Name, "as_of", reading.AsOfTime)
		return stateSuccess
	default:
		return stateSuccess
	}
}

func (s *service) isStale(r Reading) bool {
	return s.clock.Since(r.AsOfTime) > s.cfg.StaleAfter
}

// load fetches, parses and converts one station report.
func (s *service) load(ctx context.Context, sp spot.Spot, path string) (Reading, error) {
	text, err := s.fetch(ctx, path)
	if err != nil {
		return Reading{}, err
	}
	obs, err := ParseReport(text)
	if err != nil {
		return Reading{}, err
	}
	if obs.WaterTempC == nil {
		temp, err := s.fallbackWaterTemp(ctx)
		if err != nil {
			return Reading{}, err
		}
		obs.WaterTempC = temp
	}
	reading := toReading(obs, sp.Orientation, sp.HighWind)
	reading.Spot = sp.Name
	return reading, nil
}

func (s *service) fallbackWaterTemp(ctx context.Context) (*float64, error) {
	text, err := s.fetch(ctx, spot.WaterTempFallbackPath)
	if err != nil {
		return nil, err
	}
	temp, ok := ParseWaterTemp(text)
	if !ok {
		s.logger.Warn("no water temperature in fallback buoy report", "path", spot.WaterTempFallbackPath)
		return nil, nil
	}
	return &temp, nil
}

// fetch requests path, retrying once on failure. Attempts are sequential.
func (s *service) fetch(ctx context.Context, path string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		text, err := s.client.FetchReport(attemptCtx, path)
		cancel()
		if err == nil {
			s.logger.Debug("NOAA realtime success", "path", path, "attempt", attempt)
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		s.logger.Warn("NOAA realtime request failed", "path", path, "attempt", attempt, "error", err)
	}
	return "", apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "Non 200 response from NOAA realtime", lastErr)
}
