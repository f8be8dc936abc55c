package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricReportGenerated     = "report.generated"
	metricTransactionsScanned = "report.transactions_scanned"
	metricExcludedRemoved     = "report.excluded_removed"
	metricOffsettingRemoved   = "report.offsetting_removed"
	metricCircuitOpen         = "circuit_breaker.open"
)

type PrometheusMetrics struct {
	reportsGenerated    *prometheus.CounterVec
	reportDuration      *prometheus.HistogramVec
	transactionsScanned *prometheus.HistogramVec
	excludedRemoved     *prometheus.CounterVec
	offsettingRemoved   *prometheus.CounterVec
	circuitOpen         *prometheus.CounterVec
}

// NewPrometheusMetrics registers the report metrics with reg. Tests pass a fresh
// prometheus.NewRegistry(); the server passes prometheus.DefaultRegisterer.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		reportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_reports_generated_total",
				Help: "Total number of reports generated",
			},
			[]string{"report", "status"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_report_duration_milliseconds",
				Help:    "Report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"report"},
		),
		transactionsScanned: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_report_transactions_scanned",
				Help:    "Number of transactions read from storage per report",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"report"},
		),
		excludedRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_excluded_transactions_total",
				Help: "Transactions left out by status or description",
			},
			[]string{"report"},
		),
		offsettingRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_offsetting_transactions_total",
				Help: "Transactions removed as part of an offsetting pair",
			},
			[]string{"report"},
		),
		circuitOpen: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_circuit_breaker_rejections_total",
				Help: "Calls rejected because a dependency's circuit breaker was open",
			},
			[]string{"dependency"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case metricReportGenerated:
		if status := tags["status"]; status != "" {
			m.reportsGenerated.WithLabelValues(tags["report"], status).Inc()
		}
	case metricCircuitOpen:
		m.circuitOpen.WithLabelValues(tags["dependency"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.reportDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	report := tags["report"]
	switch name {
	case metricTransactionsScanned:
		m.transactionsScanned.WithLabelValues(report).Observe(value)
	case metricExcludedRemoved:
		m.excludedRemoved.WithLabelValues(report).Add(value)
	case metricOffsettingRemoved:
		m.offsettingRemoved.WithLabelValues(report).Add(value)
	}
}
