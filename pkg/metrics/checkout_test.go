package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() == name {
			return fam
		}
	}
	return nil
}

func TestCheckoutMetricsCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncAttempt("success")
	m.IncAttempt("success")
	m.IncAttempt("empty_cart")
	m.IncAttempt("")
	m.ObserveDuration(120 * time.Millisecond)
	m.IncCartClearMiss()
	m.IncIdempotentHit()

	attempts := gather(t, reg, "checkout_attempts_total")
	require.NotNil(t, attempts)

	byOutcome := map[string]float64{}
	for _, metric := range attempts.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "outcome" {
				byOutcome[label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(2), byOutcome["success"])
	assert.Equal(t, float64(1), byOutcome["empty_cart"])
	assert.Equal(t, float64(1), byOutcome["unknown"])

	duration := gather(t, reg, "checkout_duration_seconds")
	require.NotNil(t, duration)
	assert.Equal(t, uint64(1), duration.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestCheckoutMetricsNilSafe(t *testing.T) {
	var m *CheckoutMetrics
	m.IncAttempt("success")
	m.ObserveDuration(time.Second)
	m.IncCartClearMiss()
	m.IncIdempotentHit()

	unregistered := NewCheckoutMetrics(nil)
	unregistered.IncAttempt("success")
	unregistered.ObserveDuration(time.Second)
	unregistered.IncCartClearMiss()
	unregistered.IncIdempotentHit()
}
