package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the bot.
type Metrics struct {
	Ticks             prometheus.Counter
	NotificationsSent prometheus.Counter
	DispatchErrors    prometheus.Counter
	NotifierRunning   prometheus.Gauge
	DispatchDuration  prometheus.Histogram

	Commands *prometheus.CounterVec // labels: command={today,next,weather}, outcome={ok,invalid}
}

// NewMetrics creates and registers all bot metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "ticks_total",
			Help:      "Total notifier scan ticks executed.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "notifications_sent_total",
			Help:      "Total storm notifications successfully dispatched.",
		}),
		DispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "dispatch_errors_total",
			Help:      "Total notifications lost after exhausting dispatch retries.",
		}),
		NotifierRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_bot",
			Name:      "notifier_running",
			Help:      "1 when the notifier loop is ticking, 0 otherwise.",
		}),
		DispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_bot",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of a complete notification dispatch, retries included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "commands_total",
			Help:      "Chat commands handled, by command and outcome.",
		}, []string{"command", "outcome"}),
	}

	prometheus.MustRegister(
		m.Ticks,
		m.NotificationsSent,
		m.DispatchErrors,
		m.NotifierRunning,
		m.DispatchDuration,
		m.Commands,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Ticks:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bot", Name: "ticks_total"}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bot", Name: "notifications_sent_total"}),
		DispatchErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bot", Name: "dispatch_errors_total"}),
		NotifierRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_bot", Name: "notifier_running"}),
		DispatchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_bot", Name: "dispatch_duration_seconds"}),
		Commands:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_bot", Name: "commands_total"}, []string{"command", "outcome"}),
	}
}
