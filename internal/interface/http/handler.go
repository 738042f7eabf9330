package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Austionian/gathering-surf/internal/domain/conditions"
	"github.com/Austionian/gathering-surf/internal/domain/forecast"
	"github.com/Austionian/gathering-surf/internal/domain/realtime"
	"github.com/Austionian/gathering-surf/internal/domain/spot"
	"github.com/Austionian/gathering-surf/internal/domain/waterquality"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	forecastSvc     forecast.Service
	realtimeSvc     realtime.Service
	waterQualitySvc waterquality.Service
	conditionsSvc   conditions.Service
	logger          *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(forecastSvc forecast.Service, realtimeSvc realtime.Service, waterQualitySvc waterquality.Service, conditionsSvc conditions.Service, logger *slog.Logger) *Handler {
	return &Handler{
		forecastSvc:     forecastSvc,
		realtimeSvc:     realtimeSvc,
		waterQualitySvc: waterQualitySvc,
		conditionsSvc:   conditionsSvc,
		logger:          logger.With("component", "http.handler"),
	}
}

// Forecast returns the hourly forecast for ?spot=.
func (h *Handler) Forecast(c *gin.Context) {
	resp, err := h.forecastSvc.Get(c.Request.Context(), c.Query("spot"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Realtime returns the latest station reading for ?spot=.
func (h *Handler) Realtime(c *gin.Context) {
	resp, err := h.realtimeSvc.Get(c.Request.Context(), c.Query("spot"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// WaterQuality returns the beach advisory for ?spot=.
func (h *Handler) WaterQuality(c *gin.Context) {
	resp, err := h.waterQualitySvc.Get(c.Request.Context(), c.Query("spot"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Conditions returns every section of the spot page. Section failures are
// reported inline, so this always answers 200.
func (h *Handler) Conditions(c *gin.Context) {
	c.JSON(http.StatusOK, h.conditionsSvc.Get(c.Request.Context(), c.Query("spot")))
}

// Spots lists the supported beaches.
func (h *Handler) Spots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default": spot.Default().Name,
		"spots":   spot.All(),
	})
}

// HealthCheck answers liveness probes.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
