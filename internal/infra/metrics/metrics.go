package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus collectors on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	updates        *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
	decisions      *prometheus.CounterVec
	points         *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Telegram updates handled, by kind",
	}, []string{"kind"})

	updateDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bot_update_duration_seconds",
		Help:    "Time spent handling one Telegram update",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_moderation_decisions_total",
		Help: "Moderation decisions applied, by action",
	}, []string{"action"})

	points := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_points_adjusted_total",
		Help: "Absolute points moved through the ledger, by direction",
	}, []string{"direction"})

	registry.MustRegister(
		updates,
		updateDuration,
		decisions,
		points,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		updates:        updates,
		updateDuration: updateDuration,
		decisions:      decisions,
		points:         points,
	}
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) ObserveUpdate(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind).Inc()
	m.updateDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) IncDecision(action string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(action).Inc()
}

func (m *Metrics) AddPoints(delta int64) {
	if m == nil || delta == 0 {
		return
	}
	direction := "credit"
	if delta < 0 {
		direction = "debit"
		delta = -delta
	}
	m.points.WithLabelValues(direction).Add(float64(delta))
}
