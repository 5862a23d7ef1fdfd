package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the country module.
type Metrics struct {
	CountriesCreated prometheus.Counter
	CountriesDeleted prometheus.Counter
	CreateDuration   prometheus.Histogram
	BulkSize         prometheus.Histogram
}

// New creates a new Metrics instance with all country module metrics registered.
func New() *Metrics {
	return &Metrics{
		CountriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sportify_countries_created_total",
			Help: "Total number of countries created",
		}),
		CountriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sportify_countries_deleted_total",
			Help: "Total number of countries deleted",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sportify_country_create_duration_seconds",
			Help:    "Duration of single and bulk country creation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		BulkSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sportify_country_bulk_size",
			Help:    "Number of countries per committed bulk create",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

// IncrementCreated records n created countries.
func (m *Metrics) IncrementCreated(n int) {
	m.CountriesCreated.Add(float64(n))
}

// IncrementDeleted records a deleted country.
func (m *Metrics) IncrementDeleted() {
	m.CountriesDeleted.Inc()
}

// ObserveCreate records the duration of a create.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

// ObserveBulkSize records the size of a committed bulk create.
func (m *Metrics) ObserveBulkSize(n int) {
	m.BulkSize.Observe(float64(n))
}
