// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the watcher.
type Metrics struct {
	// Cycle metrics
	CyclesTotal   prometheus.Counter
	CycleDuration prometheus.Histogram
	PairsFetched  prometheus.Counter
	PairsAdmitted prometheus.Counter
	PairErrors    prometheus.Counter

	// Classification metrics
	Classifications *prometheus.CounterVec
	BlacklistSize   *prometheus.GaugeVec

	// Collaborator metrics
	CollaboratorLatency *prometheus.HistogramVec
	CollaboratorErrors  *prometheus.CounterVec

	// Trading metrics
	TradesSimulated   *prometheus.CounterVec
	NotificationsSent prometheus.Counter
	NotificationFails prometheus.Counter

	// Storage metrics
	StorageErrors *prometheus.CounterVec

	// Health metrics
	LastSuccessfulCycle prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "dexwatch"
	}

	return &Metrics{
		CyclesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "cycles_total",
			Help:      "Total number of completed poll cycles",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one poll cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		PairsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "pairs_fetched_total",
			Help:      "Total number of pair records fetched from the feed",
		}),
		PairsAdmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "pairs_admitted_total",
			Help:      "Total number of pairs that passed the admission filter",
		}),
		PairErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "pair_errors_total",
			Help:      "Total number of pairs dropped by a processing error",
		}),

		Classifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "classifications_total",
			Help:      "Total number of classifications by category",
		}, []string{"category"}),
		BlacklistSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "blacklist_size",
			Help:      "Current number of entries per blacklist kind",
		}, []string{"kind"}),

		CollaboratorLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "collaborator",
			Name:      "request_duration_seconds",
			Help:      "Duration of collaborator HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator"}),
		CollaboratorErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collaborator",
			Name:      "request_errors_total",
			Help:      "Total number of collaborator request failures",
		}, []string{"collaborator"}),

		TradesSimulated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trading",
			Name:      "trades_simulated_total",
			Help:      "Total number of simulated trades by action",
		}, []string{"action"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "messages_sent_total",
			Help:      "Total number of notifications delivered",
		}),
		NotificationFails: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "messages_failed_total",
			Help:      "Total number of notification delivery failures",
		}),

		StorageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "write_errors_total",
			Help:      "Total number of storage write failures by record type",
		}, []string{"record"}),

		LastSuccessfulCycle: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "last_successful_cycle_timestamp",
			Help:      "Unix timestamp of the last completed cycle",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
