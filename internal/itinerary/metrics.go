package itinerary

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors recorded while generating itineraries.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	fallbacks   prometheus.Counter
	generations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "tripweaver", Name: "provider_requests_total", Help: "Outbound LLM provider calls."},
			[]string{"provider", "outcome"}, // outcome: ok or an error kind
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tripweaver", Name: "provider_request_duration_seconds",
				Help:    "Outbound LLM provider call duration seconds.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 90},
			},
			[]string{"provider"},
		),
		fallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: "tripweaver", Name: "provider_fallbacks_total", Help: "Primary failures handed to the secondary provider."},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "tripweaver", Name: "itinerary_generations_total", Help: "Itinerary generations by outcome."},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.fallbacks, m.generations)
	return m
}

func (m *Metrics) observeRequest(provider string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, outcomeLabel(err)).Inc()
	m.latency.WithLabelValues(provider).Observe(dur.Seconds())
}

func (m *Metrics) observeFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) observeGeneration(err error) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if k := KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}
