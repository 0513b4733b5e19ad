package validate

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts submission checks by resource and result.
type Metrics struct {
	checks *prometheus.CounterVec
}

// NewMetrics registers the validator collectors with reg. A nil reg uses a
// private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "validate",
			Name:      "outcomes_total",
			Help:      "Submission checks by resource and result (ok or failure kind).",
		}, []string{"resource", "result"}),
	}
	reg.MustRegister(m.checks)
	return m
}

// Checks returns the outcome counter.
func (m *Metrics) Checks() *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.checks
}

func (m *Metrics) observe(resource string, outcomes []Outcome) {
	if m == nil {
		return
	}
	if len(outcomes) == 0 {
		m.checks.WithLabelValues(resource, "ok").Inc()
		return
	}
	for _, o := range outcomes {
		m.checks.WithLabelValues(resource, o.Kind.String()).Inc()
	}
}
