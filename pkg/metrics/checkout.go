package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks the checkout pipeline: attempts by outcome,
// end-to-end latency, and cart clears that had to fall back to the
// sweep job.
type CheckoutMetrics struct {
	attempts        *prometheus.CounterVec
	duration        prometheus.Histogram
	cartClearMisses prometheus.Counter
	idempotentHits  prometheus.Counter
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts partitioned by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "End-to-end checkout duration in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	cartClearMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_cart_clear_misses_total",
		Help: "Post-commit cart clears deferred to the sweep job.",
	})
	idempotentHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_idempotent_hits_total",
		Help: "Checkout requests answered from the replay cache.",
	})
	reg.MustRegister(attempts, duration, cartClearMisses, idempotentHits)
	return &CheckoutMetrics{
		attempts:        attempts,
		duration:        duration,
		cartClearMisses: cartClearMisses,
		idempotentHits:  idempotentHits,
	}
}

func (c *CheckoutMetrics) IncAttempt(outcome string) {
	if c == nil || c.attempts == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	c.attempts.WithLabelValues(outcome).Inc()
}

func (c *CheckoutMetrics) ObserveDuration(duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.Observe(duration.Seconds())
}

func (c *CheckoutMetrics) IncCartClearMiss() {
	if c == nil || c.cartClearMisses == nil {
		return
	}
	c.cartClearMisses.Inc()
}

func (c *CheckoutMetrics) IncIdempotentHit() {
	if c == nil || c.idempotentHits == nil {
		return
	}
	c.idempotentHits.Inc()
}
