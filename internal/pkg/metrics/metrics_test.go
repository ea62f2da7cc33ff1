package metrics_test

import (
	"testing"
	"time"

	"packhouse/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewLedgerMetrics(reg)

	m.RecordDecision("pallet", "accepted", "")
	m.RecordDecision("pallet", "accepted", "")
	m.RecordDecision("waste", "rejected", "budget_exceeded")
	m.RecordFinalization(true)
	m.RecordFinalization(false)
	m.RecordFinalization(false)
	m.ObserveCommand("add_pallet", time.Now().Add(-time.Millisecond))
	m.SetReadyToFinalize(3)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Decisions.WithLabelValues("pallet", "accepted", "none")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Decisions.WithLabelValues("waste", "rejected", "budget_exceeded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Finalizations.WithLabelValues("finalized")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Finalizations.WithLabelValues("blocked")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ReadyToFinalize), 0)

	count, err := testutil.GatherAndCount(reg, "packhouse_command_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.LedgerMetrics

	assert.NotPanics(t, func() {
		m.RecordDecision("pallet", "accepted", "")
		m.RecordFinalization(true)
		m.ObserveCommand("x", time.Now())
		m.SetReadyToFinalize(1)
	})
}
