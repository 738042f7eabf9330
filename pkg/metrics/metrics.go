package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gathering_surf"

// Metrics holds the Prometheus collectors for upstream fetches and caching.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: source={nws,ndbc,arcgis}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: source
	Fallbacks        *prometheus.CounterVec   // labels: reason={stale,failed,no_buoy}
	CacheLookups     *prometheus.CounterVec   // labels: kind={forecast,realtime,water-quality}, result={hit,miss,error}
}

// New creates and registers the collectors with the default registry.
func New() *Metrics {
	m := build(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream data requests in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
	prometheus.MustRegister(m.UpstreamRequests, m.UpstreamDuration, m.Fallbacks, m.CacheLookups)
	return m
}

// NewForTesting returns unregistered collectors so tests can build many instances.
func NewForTesting() *Metrics {
	return build(prometheus.HistogramOpts{Namespace: namespace, Name: "upstream_request_duration_seconds"})
}

func build(durationOpts prometheus.HistogramOpts) *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream data requests by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(durationOpts, []string{"source"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_fallbacks_total",
			Help:      "Realtime readings served from a fallback station, by reason.",
		}, []string{"reason"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by payload kind and result.",
		}, []string{"kind", "result"}),
	}
}

// ObserveUpstream records one upstream call. Safe on a nil receiver.
func (m *Metrics) ObserveUpstream(source string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(source, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// ObserveFallback counts a realtime fallback. Safe on a nil receiver.
func (m *Metrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(reason).Inc()
}

// ObserveCache counts a cache lookup. Safe on a nil receiver.
func (m *Metrics) ObserveCache(kind, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(kind, result).Inc()
}
