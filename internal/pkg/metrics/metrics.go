// Package metrics exposes Prometheus counters for ledger decisions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics records the outcome of every gated command.
type LedgerMetrics struct {
	Decisions       *prometheus.CounterVec
	Finalizations   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	ReadyToFinalize prometheus.Gauge
}

// NewLedgerMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	factory := promauto.With(reg)

	return &LedgerMetrics{
		Decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "packhouse_ledger_decisions_total",
				Help: "Validation decisions taken by the weight ledger",
			},
			[]string{"operation", "outcome", "reason"},
		),
		Finalizations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "packhouse_finalizations_total",
				Help: "Finalization attempts by result",
			},
			[]string{"result"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "packhouse_command_duration_seconds",
				Help:    "Time spent handling a command, including persistence",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		ReadyToFinalize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "packhouse_classifications_ready_to_finalize",
				Help: "Open classifications that pass the finalization gate, as of the last sweep",
			},
		),
	}
}

// RecordDecision counts one ledger decision. A nil receiver is a no-op.
func (m *LedgerMetrics) RecordDecision(operation, outcome, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.Decisions.WithLabelValues(operation, outcome, reason).Inc()
}

// RecordFinalization counts one finalization attempt.
func (m *LedgerMetrics) RecordFinalization(allowed bool) {
	if m == nil {
		return
	}
	result := "blocked"
	if allowed {
		result = "finalized"
	}
	m.Finalizations.WithLabelValues(result).Inc()
}

// ObserveCommand records the elapsed time since start.
func (m *LedgerMetrics) ObserveCommand(command string, start time.Time) {
	if m == nil {
		return
	}
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}

// SetReadyToFinalize publishes the result of the last sweep.
func (m *LedgerMetrics) SetReadyToFinalize(n int) {
	if m == nil {
		return
	}
	m.ReadyToFinalize.Set(float64(n))
}
