// Package metrics provides Prometheus instrumentation for validation
// runs. Metrics are registered through an injectable Registerer so
// tests can use an isolated registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the checker's instruments.
type Metrics struct {
	ChecksTotal     prometheus.Counter
	CheckFailures   *prometheus.CounterVec // label: reason (decode, limit, other)
	Findings        *prometheus.CounterVec // label: severity (ERROR, WARN)
	FinancialIssues prometheus.Counter
	CheckDuration   prometheus.Histogram
}

// New registers the metrics with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ChecksTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "csvchecker_checks_total",
			Help: "Total number of completed validation runs",
		}),
		CheckFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "csvchecker_check_failures_total",
			Help: "Total number of runs aborted by a fatal condition",
		}, []string{"reason"}),
		Findings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "csvchecker_date_findings_total",
			Help: "Total number of date findings by severity",
		}, []string{"severity"}),
		FinancialIssues: f.NewCounter(prometheus.CounterOpts{
			Name: "csvchecker_financial_issues_total",
			Help: "Total number of amount rule hits",
		}),
		CheckDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "csvchecker_check_duration_seconds",
			Help:    "Duration of a validation run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveCheck records the duration of a completed run.
// Call with time.Now() captured at the start of the run.
func (m *Metrics) ObserveCheck(start time.Time) {
	m.CheckDuration.Observe(time.Since(start).Seconds())
}
