// Package metrics provides Prometheus metrics for catalogue resolution.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ResolutionsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeCached  = "cached"
)

// Metrics holds all Prometheus metrics of the service.
type Metrics struct {
	registry *prometheus.Registry

	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
	WarningsTotal      prometheus.Counter
	VehiclesResolved   *prometheus.GaugeVec
	SnapshotsPersisted prometheus.Counter
}

// New creates the metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogue_resolutions_total",
				Help: "Total number of catalogue resolution requests by outcome",
			},
			[]string{"outcome"},
		),
		ResolutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalogue_resolution_duration_seconds",
				Help:    "Duration of full catalogue resolutions in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
		WarningsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "catalogue_warnings_total",
				Help: "Total number of warnings raised by resolutions",
			},
		),
		VehiclesResolved: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalogue_vehicles",
				Help: "Number of vehicles in the latest snapshot per game version",
			},
			[]string{"game_version"},
		),
		SnapshotsPersisted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "catalogue_snapshots_persisted_total",
				Help: "Total number of snapshots written to the database",
			},
		),
	}
}

// RecordResolution records a finished resolution.
func (m *Metrics) RecordResolution(gameVersion string, vehicles, warnings int, duration time.Duration) {
	m.ResolutionsTotal.WithLabelValues(OutcomeSuccess).Inc()
	m.ResolutionDuration.Observe(duration.Seconds())
	m.WarningsTotal.Add(float64(warnings))
	m.VehiclesResolved.WithLabelValues(gameVersion).Set(float64(vehicles))
}

// RecordFailure records a resolution that returned an error.
func (m *Metrics) RecordFailure() {
	m.ResolutionsTotal.WithLabelValues(OutcomeError).Inc()
}

// RecordCacheHit records a request served from the snapshot cache.
func (m *Metrics) RecordCacheHit() {
	m.ResolutionsTotal.WithLabelValues(OutcomeCached).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
