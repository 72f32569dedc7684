package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the advisor's collectors on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	AlertsTotal        prometheus.Counter
	OverloadedGroups   prometheus.Counter
	HouseCurrent       prometheus.Gauge
	EvaluationDuration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		AlertsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_alerts_total",
			Help: "Advisory messages emitted by the recommendation engine.",
		}),
		OverloadedGroups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_overloaded_groups_total",
			Help: "Socket group evaluations that exceeded the group limit.",
		}),
		HouseCurrent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "advisor_house_current_amperes",
			Help: "Whole-house current seen by the last evaluation cycle.",
		}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_evaluation_seconds",
			Help:    "Duration of a full evaluation cycle.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	m.Registry.MustRegister(m.AlertsTotal, m.OverloadedGroups, m.HouseCurrent, m.EvaluationDuration)
	return m
}
