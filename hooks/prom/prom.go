// Package promhooks exports redstore hook events as Prometheus metrics:
// operation durations, operation errors, acquire failures, and policy
// rejections. Register the returned Hooks' collectors on your registry (or
// pass prometheus.DefaultRegisterer) and serve them with promhttp.
package promhooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/redstore"
)

type Hooks struct {
	opDuration     *prometheus.HistogramVec
	opErrors       *prometheus.CounterVec
	acquireFailed  *prometheus.CounterVec
	policyRejected *prometheus.CounterVec
}

var _ redstore.Hooks = (*Hooks)(nil)

// New builds the collectors and registers them on reg. A nil reg skips
// registration (useful in tests).
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "redstore",
			Name:      "op_duration_seconds",
			Help:      "Duration of completed store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		opErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redstore",
			Name:      "op_errors_total",
			Help:      "Remote operations that failed after a connection was acquired.",
		}, []string{"op"}),
		acquireFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redstore",
			Name:      "acquire_failures_total",
			Help:      "Operations that could not acquire a connection.",
		}, []string{"op"}),
		policyRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redstore",
			Name:      "policy_rejections_total",
			Help:      "Values refused by the cacheability policy.",
		}, []string{"batch"}),
	}
	if reg != nil {
		reg.MustRegister(h.opDuration, h.opErrors, h.acquireFailed, h.policyRejected)
	}
	return h
}

func (h *Hooks) PolicyRejected(_ string, batch bool) {
	label := "false"
	if batch {
		label = "true"
	}
	h.policyRejected.WithLabelValues(label).Inc()
}

func (h *Hooks) AcquireFailed(op string, _ error) {
	h.acquireFailed.WithLabelValues(op).Inc()
}

func (h *Hooks) OpError(op, _ string, _ error) {
	h.opErrors.WithLabelValues(op).Inc()
}

func (h *Hooks) OpCompleted(op string, elapsed time.Duration) {
	h.opDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}
