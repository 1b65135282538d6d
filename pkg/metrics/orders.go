package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records submission pipeline outcomes.
type OrderMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_submit_success_total",
		Help: "Successful order submissions.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submit_failure_total",
		Help: "Failed order submissions by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, success, failure)
	return &OrderMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the submission duration for the given outcome.
func (o *OrderMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if o == nil || o.duration == nil {
		return
	}
	o.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (o *OrderMetrics) IncSuccess() {
	if o == nil || o.success == nil {
		return
	}
	o.success.Inc()
}

// IncFailure increments the failure counter for the named error code.
func (o *OrderMetrics) IncFailure(code string) {
	if o == nil || o.failure == nil {
		return
	}
	o.failure.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
