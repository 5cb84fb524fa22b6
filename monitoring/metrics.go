package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hackathon_list_duration_seconds",
			Help:    "Duration of list queries, by endpoint",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"endpoint"},
	)

	refreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackathon_refresh_runs_total",
			Help: "Total refresh pipeline runs",
		},
		[]string{"status"},
	)

	copilotRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_requests_total",
			Help: "Total copilot plan requests",
		},
		[]string{"outcome"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	activeRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hackathon_active_records",
			Help: "Active hackathon records in the store",
		},
	)
)

// ActiveCounter is the slice of the store the monitor needs.
type ActiveCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type Monitor struct {
	store ActiveCounter
}

func NewMonitor(store ActiveCounter) *Monitor {
	monitor := &Monitor{store: store}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if count, err := m.store.CountActive(ctx); err == nil {
			activeRecords.Set(float64(count))
		}
		cancel()
	}
}

// TrackListQuery records a list query duration for an endpoint.
func (m *Monitor) TrackListQuery(endpoint string, duration time.Duration) {
	listDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// TrackRefresh records a refresh run by its terminal status.
func (m *Monitor) TrackRefresh(status string) {
	refreshRuns.WithLabelValues(status).Inc()
}

// TrackCopilot records a copilot request outcome: "api", "fallback" or "rejected".
func (m *Monitor) TrackCopilot(outcome string) {
	copilotRequests.WithLabelValues(outcome).Inc()
}

// TrackRateLimited counts a request turned away by the rate limiter.
func (m *Monitor) TrackRateLimited() {
	rateLimited.Inc()
}
