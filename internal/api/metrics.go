package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts API requests by method, resource and outcome.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg. A nil reg uses a
// private registry so tests can create clients freely.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Content API requests by method, resource and outcome.",
		}, []string{"method", "resource", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Content API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

// Requests returns the request counter for assertions and exporters.
func (m *Metrics) Requests() *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.requests
}

func (m *Metrics) observe(method, resource string, status int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, resource, outcome(status, err)).Inc()
	m.latency.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

func outcome(status int, err error) string {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return strconv.Itoa(se.Code)
	case err != nil:
		return "error"
	case status == 0:
		return "ok"
	default:
		return strconv.Itoa(status)
	}
}
