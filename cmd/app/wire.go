//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/Austionian/gathering-surf/internal/bootstrap"
	"github.com/Austionian/gathering-surf/internal/domain/conditions"
	"github.com/Austionian/gathering-surf/internal/domain/forecast"
	"github.com/Austionian/gathering-surf/internal/domain/realtime"
	"github.com/Austionian/gathering-surf/internal/domain/waterquality"
	"github.com/Austionian/gathering-surf/internal/infra/arcgis"
	"github.com/Austionian/gathering-surf/internal/infra/config"
	"github.com/Austionian/gathering-surf/internal/infra/ndbc"
	"github.com/Austionian/gathering-surf/internal/infra/nws"
	httpiface "github.com/Austionian/gathering-surf/internal/interface/http"
	"github.com/Austionian/gathering-surf/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideClock,
		provideMetrics,
		provideCacheStore,
		provideForecastConfig,
		provideRealtimeConfig,
		provideWaterQualityConfig,
		provideNWSClient,
		provideNDBCClient,
		provideArcGISClient,
		forecast.NewService,
		realtime.NewService,
		waterquality.NewService,
		conditions.NewService,
		wire.Bind(new(forecast.GridClient), new(*nws.Client)),
		wire.Bind(new(realtime.ReportClient), new(*ndbc.Client)),
		wire.Bind(new(waterquality.AttributeClient), new(*arcgis.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
