package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of the funnel API. All methods are safe on a
// nil receiver so components can run without a registry.
type Metrics struct {
	Registry *prometheus.Registry

	QuizSubmissions     *prometheus.CounterVec
	Emails              *prometheus.CounterVec
	CheckoutSessions    *prometheus.CounterVec
	WebhookEvents       *prometheus.CounterVec
	RetrySweepReports   *prometheus.CounterVec
	PersistenceErrors   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every collector on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		QuizSubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_submissions_total",
				Help: "Total number of quiz submissions by outcome",
			},
			[]string{"outcome"},
		),

		Emails: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_total",
				Help: "Total number of email deliveries by kind and result",
			},
			[]string{"kind", "result"},
		),

		CheckoutSessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_sessions_total",
				Help: "Total number of checkout session requests by result",
			},
			[]string{"result"},
		),

		WebhookEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Total number of payment webhook events by type and result",
			},
			[]string{"type", "result"},
		),

		RetrySweepReports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retry_sweep_reports_total",
				Help: "Total number of reports processed by the retry sweep",
			},
			[]string{"result"},
		),

		PersistenceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "persistence_errors_total",
				Help: "Total number of swallowed persistence errors by operation",
			},
			[]string{"operation"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.QuizSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncEmail(kind, result string) {
	if m == nil {
		return
	}
	m.Emails.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) IncCheckout(result string) {
	if m == nil {
		return
	}
	m.CheckoutSessions.WithLabelValues(result).Inc()
}

func (m *Metrics) IncWebhook(eventType, result string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(eventType, result).Inc()
}

func (m *Metrics) IncSweepReport(result string) {
	if m == nil {
		return
	}
	m.RetrySweepReports.WithLabelValues(result).Inc()
}

func (m *Metrics) IncPersistenceError(operation string) {
	if m == nil {
		return
	}
	m.PersistenceErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
