// Package metrics counts what happens during a session and can export the
// counters in the Prometheus text format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "expense_tracker"

// PrometheusMetrics records on a private registry so that several instances
// (one per test) never collide on the global one.
type PrometheusMetrics struct {
	registry       *prometheus.Registry
	expensesAdded  prometheus.Counter
	amountAdded    prometheus.Counter
	invalidAmounts prometheus.Counter
	reports        *prometheus.CounterVec
	saves          *prometheus.CounterVec
	recordsLoaded  prometheus.Gauge
}

func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		expensesAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_added_total",
			Help:      "Total number of expenses recorded",
		}),
		amountAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_added_total",
			Help:      "Sum of the amounts of recorded expenses",
		}),
		invalidAmounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_amount_total",
			Help:      "Total number of rejected amount inputs",
		}),
		reports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "Total number of summaries produced",
			},
			[]string{"report", "cache"},
		),
		saves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_saves_total",
				Help:      "Total number of full rewrites of the backing store",
			},
			[]string{"status"},
		),
		recordsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Number of records loaded from the backing store at startup",
		}),
	}
}

func (m *PrometheusMetrics) RecordExpenseAdded(amount decimal.Decimal) {
	m.expensesAdded.Inc()
	f, _ := amount.Float64()
	m.amountAdded.Add(f)
}

func (m *PrometheusMetrics) RecordInvalidAmount() {
	m.invalidAmounts.Inc()
}

func (m *PrometheusMetrics) RecordReport(report string, cached bool) {
	cache := "miss"
	if cached {
		cache = "hit"
	}
	m.reports.WithLabelValues(report, cache).Inc()
}

func (m *PrometheusMetrics) RecordSave(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.saves.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) RecordLoaded(count int) {
	m.recordsLoaded.Set(float64(count))
}

// Gatherer exposes the registry.
func (m *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current values to path in the text exposition
// format, suitable for the node_exporter textfile collector.
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordExpenseAdded(decimal.Decimal) {}
func (Nop) RecordInvalidAmount()               {}
func (Nop) RecordReport(string, bool)          {}
func (Nop) RecordSave(error)                   {}
func (Nop) RecordLoaded(int)                   {}
