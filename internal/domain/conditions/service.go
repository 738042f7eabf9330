// Package conditions assembles everything the spot page shows in one call.
package conditions

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/Austionian/gathering-surf/internal/domain/forecast"
	"github.com/Austionian/gathering-surf/internal/domain/realtime"
	"github.com/Austionian/gathering-surf/internal/domain/spot"
	"github.com/Austionian/gathering-surf/internal/domain/waterquality"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

// SectionError describes why one part of the page could not be loaded.
type SectionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Section holds either a value or the error that prevented it.
type Section[T any] struct {
	Data  *T            `json:"data,omitempty"`
	Error *SectionError `json:"error,omitempty"`
}

func newSection[T any](v T, err error) Section[T] {
	if err != nil {
		code := apperrors.Code(err)
		if code == "" {
			code = "internal_error"
		}
		return Section[T]{Error: &SectionError{Code: code, Message: err.Error()}}
	}
	return Section[T]{Data: &v}
}

// OK reports whether the section loaded.
func (s Section[T]) OK() bool { return s.Error == nil }

// Conditions is the aggregate for one spot.
type Conditions struct {
	Spot         spot.Spot                    `json:"spot"`
	Forecast     Section[forecast.Forecast]   `json:"forecast"`
	Realtime     Section[realtime.Reading]    `json:"realtime"`
	WaterQuality Section[waterquality.Report] `json:"water_quality"`
}

// Service builds the aggregate. It never fails as a whole.
type Service interface {
	Get(ctx context.Context, spotName string) Conditions
}

type service struct {
	forecast     forecast.Service
	realtime     realtime.Service
	waterQuality waterquality.Service
	clock        clockwork.Clock
	logger       *slog.Logger
}

// NewService composes the per-source services.
func NewService(fc forecast.Service, rt realtime.Service, wq waterquality.Service, clock clockwork.Clock, logger *slog.Logger) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &service{
		forecast:     fc,
		realtime:     rt,
		waterQuality: wq,
		clock:        clock,
		logger:       logger.With("component", "conditions.service"),
	}
}

func (s *service) Get(ctx context.Context, spotName string) Conditions {
	started := s.clock.Now()
	sp := spot.Lookup(spotName)
	out := Conditions{Spot: sp}

	// each goroutine owns one field; section errors are recorded, not returned
	var g errgroup.Group
	g.Go(func() error {
		fc, err := s.forecast.Get(ctx, sp.Name)
		out.Forecast = newSection(fc, err)
		return nil
	})
	g.Go(func() error {
		rt, err := s.realtime.Get(ctx, sp.Name)
		out.Realtime = newSection(rt, err)
		return nil
	})
	g.Go(func() error {
		wq, err := s.waterQuality.Get(ctx, sp.Name)
		out.WaterQuality = newSection(wq, err)
		return nil
	})
	_ = g.Wait()

	s.logger.Info("conditions assembled",
		"spot", sp.Name,
		"forecast_ok", out.Forecast.OK(),
		"realtime_ok", out.Realtime.OK(),
		"water_quality_ok", out.WaterQuality.OK(),
		"elapsed_ms", s.clock.Since(started).Milliseconds(),
	)
	return out
}
