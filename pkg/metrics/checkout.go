package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout submission outcomes.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by gateway status.",
	}, []string{"status"})
	reg.MustRegister(duration, outcomes)
	return &CheckoutMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// ObserveSubmission records one submission with its gateway status.
func (c *CheckoutMetrics) ObserveSubmission(status string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	label := normalizeLabel(status)
	c.duration.WithLabelValues(label).Observe(duration.Seconds())
	c.outcomes.WithLabelValues(label).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
