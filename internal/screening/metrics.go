package screening

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts screening outcomes for the /metrics endpoint.
type Metrics struct {
	screenings *prometheus.CounterVec
	scorings   *prometheus.CounterVec
}

// NewMetrics registers the screening counters on the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use a fresh
// registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		screenings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "screend_screenings_total",
			Help: "Screening requests by outcome (ok, degraded, rejected).",
		}, []string{"outcome"}),
		scorings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "screend_document_scorings_total",
			Help: "Document scoring requests by outcome (ok, degraded, rejected).",
		}, []string{"outcome"}),
	}
}

// Screening records one screening outcome. Nil-safe.
func (m *Metrics) Screening(outcome string) {
	if m != nil {
		m.screenings.WithLabelValues(outcome).Inc()
	}
}

// Scoring records one document-scoring outcome. Nil-safe.
func (m *Metrics) Scoring(outcome string) {
	if m != nil {
		m.scorings.WithLabelValues(outcome).Inc()
	}
}
