package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes used as the "outcome" label.
const (
	OutcomeSuccess     = "success"
	OutcomeValidation  = "validation"
	OutcomeConflict    = "conflict"
	OutcomeUnavailable = "unavailable"
)

// RegistrationMetrics holds the Prometheus collectors for registrations.
type RegistrationMetrics struct {
	Attempts        *prometheus.CounterVec
	Duration        prometheus.Histogram
	AccountsCreated prometheus.Counter
}

// NewRegistrationMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer. Registering twice with the
// same registerer panics.
func NewRegistrationMetrics(reg prometheus.Registerer) *RegistrationMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &RegistrationMetrics{
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounts",
			Name:      "registrations_total",
			Help:      "Total number of registration attempts partitioned by outcome.",
		}, []string{"outcome"}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "accounts",
			Name:      "registration_duration_seconds",
			Help:      "Time spent handling a registration, including password hashing.",
			Buckets:   prometheus.DefBuckets,
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "accounts",
			Name:      "accounts_created_total",
			Help:      "Total number of accounts created in the system.",
		}),
	}
}

func (m *RegistrationMetrics) observe(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(outcome).Inc()
	m.Duration.Observe(seconds)
	if outcome == OutcomeSuccess {
		m.AccountsCreated.Inc()
	}
}
