package waterquality

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Austionian/gathering-surf/internal/domain/readthrough"
	"github.com/Austionian/gathering-surf/internal/domain/spot"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
	"github.com/Austionian/gathering-surf/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	// cacheKind prefixes cache keys and labels cache metrics.
	cacheKind = "water-quality"
)

// Service exposes the beach advisory status for a spot.
type Service interface {
	Get(ctx context.Context, spotName string) (Report, error)
}

// AttributeClient queries one attribute of a beach's feature record.
type AttributeClient interface {
	QueryAttribute(ctx context.Context, beachName, field string) ([]byte, error)
}

type service struct {
	cfg     Config
	client  AttributeClient
	store   readthrough.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService wires up the water-quality domain.
func NewService(cfg Config, client AttributeClient, store readthrough.Store, m *metrics.Metrics, logger *slog.Logger) Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &service{
		cfg:     cfg,
		client:  client,
		store:   store,
		metrics: m,
		logger:  logger.With("component", "waterquality.service"),
	}
}

func (s *service) Get(ctx context.Context, spotName string) (Report, error) {
	sp := spot.Lookup(spotName)
	opts := readthrough.Options{Kind: cacheKind, TTL: s.cfg.CacheTTL, Logger: s.logger, Metrics: s.metrics}
	return readthrough.Fetch(ctx, s.store, sp.CacheKey(cacheKind), opts, func(ctx context.Context) (Report, error) {
		return s.load(ctx, sp)
	})
}

// load runs the status and map-status queries together.
func (s *service) load(ctx context.Context, sp spot.Spot) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	report := Report{Spot: sp.Name}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.query(gctx, sp, fieldMapStatus)
		report.WaterQuality = v
		return err
	})
	g.Go(func() error {
		v, err := s.query(gctx, sp, fieldStatus)
		report.WaterQualityText = v
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("water quality unavailable", "spot", sp.Name, "beach", sp.BeachName, "error", err)
		return Report{}, err
	}
	return report, nil
}

func (s *service) query(ctx context.Context, sp spot.Spot, field string) (string, error) {
	raw, err := s.client.QueryAttribute(ctx, sp.BeachName, field)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "failed to fetch water quality", err)
	}
	return ParseAttribute(raw, field)
}
