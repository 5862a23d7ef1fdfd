package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus metrics for storage and transport.
// Construct it once in main; promauto registers on the default registry.
type Metrics struct {
	UnitOfWorkCommitted  prometheus.Counter
	UnitOfWorkRolledBack *prometheus.CounterVec
	UnitOfWorkDuration   prometheus.Histogram
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New creates and registers all platform metrics.
func New() *Metrics {
	return &Metrics{
		UnitOfWorkCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sportify_unit_of_work_committed_total",
			Help: "Total number of units of work that committed",
		}),
		UnitOfWorkRolledBack: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sportify_unit_of_work_rolled_back_total",
			Help: "Total number of units of work rolled back, by reason",
		}, []string{"reason"}),
		UnitOfWorkDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sportify_unit_of_work_duration_seconds",
			Help:    "Time from session open to close",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sportify_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncrementUnitOfWorkCommitted records a successful commit.
func (m *Metrics) IncrementUnitOfWorkCommitted() {
	m.UnitOfWorkCommitted.Inc()
}

// IncrementUnitOfWorkRolledBack records a rollback with its reason
// (error, panic, cancelled, commit_failed).
func (m *Metrics) IncrementUnitOfWorkRolledBack(reason string) {
	m.UnitOfWorkRolledBack.WithLabelValues(reason).Inc()
}

// ObserveUnitOfWork records the duration of a unit of work.
// Call with time.Now() taken before the session opened.
func (m *Metrics) ObserveUnitOfWork(start time.Time) {
	m.UnitOfWorkDuration.Observe(time.Since(start).Seconds())
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, start time.Time) {
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
