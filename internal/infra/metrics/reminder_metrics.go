// Package metrics exposes reminder job observations to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/payontime/backend/internal/application/adapter"
)

const namespace = "payontime"

// Registry owns the application collectors on a private Prometheus registry.
type Registry struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	userOutcomes  *prometheus.CounterVec
	remindersSent prometheus.Counter
}

// NewRegistry creates and registers the reminder collectors plus the Go runtime collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "runs_total",
			Help:      "Reminder runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "run_duration_seconds",
			Help:      "Duration of reminder runs.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
		userOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "user_outcomes_total",
			Help:      "Per-user reminder results by status.",
		}, []string{"status"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "sent_total",
			Help:      "Reminder instances delivered.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.runs,
		r.runDuration,
		r.userOutcomes,
		r.remindersSent,
	)
	return r
}

// Reminders returns the registry as the reminder job's metrics sink.
func (r *Registry) Reminders() adapter.ReminderMetrics {
	return r
}

// ObserveRun implements adapter.ReminderMetrics.
func (r *Registry) ObserveRun(outcome string, duration time.Duration) {
	r.runs.WithLabelValues(outcome).Inc()
	r.runDuration.Observe(duration.Seconds())
}

// IncUserOutcome implements adapter.ReminderMetrics.
func (r *Registry) IncUserOutcome(status string) {
	r.userOutcomes.WithLabelValues(status).Inc()
}

// AddRemindersSent implements adapter.ReminderMetrics.
func (r *Registry) AddRemindersSent(n int) {
	if n > 0 {
		r.remindersSent.Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
