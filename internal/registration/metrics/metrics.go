// Package metrics публикует метрики формы регистрации в Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы отправки формы.
const (
	OutcomeInvalid   = "invalid"
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeBusy      = "busy"
)

// Metrics содержит метрики формы. Методы безопасны для nil.
type Metrics struct {
	Submissions      *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	CountryLoads     *prometheus.CounterVec
	SubmitLatency    prometheus.Histogram
	ActiveSessions   prometheus.Gauge
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_submissions_total",
			Help: "Submit attempts by outcome",
		}, []string{"outcome"}), // outcome: invalid, succeeded, failed, busy

		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_validation_errors_total",
			Help: "Validation failures by field",
		}, []string{"field"}),

		CountryLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_country_loads_total",
			Help: "Country list loads by resulting state",
		}, []string{"state"}),

		SubmitLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "regform_submit_duration_seconds",
			Help:    "Duration of the remote registration call",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "regform_active_sessions",
			Help: "Form sessions currently held in memory",
		}),
	}
}

func (m *Metrics) IncSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

// IncValidationErrors учитывает каждое невалидное поле.
func (m *Metrics) IncValidationErrors(fields map[string]string) {
	if m == nil {
		return
	}
	for field := range fields {
		m.ValidationErrors.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) IncCountryLoad(state string) {
	if m != nil {
		m.CountryLoads.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) SessionOpened() {
	if m != nil {
		m.ActiveSessions.Inc()
	}
}

func (m *Metrics) SessionClosed() {
	if m != nil {
		m.ActiveSessions.Dec()
	}
}
