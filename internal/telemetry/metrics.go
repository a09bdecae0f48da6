package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors of the service
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	Analyses           *prometheus.CounterVec
	CompletionOutcomes *prometheus.CounterVec
	CompletionLatency  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "codelens",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "codelens",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "codelens",
			Name:      "analyses_total",
			Help:      "Dispatched analyses by request type and outcome.",
		}, []string{"request_type", "outcome"}),
		CompletionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "codelens",
			Name:      "completions_total",
			Help:      "Remote text-generation calls by outcome.",
		}, []string{"outcome"}),
		CompletionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "codelens",
			Name:      "completion_duration_seconds",
			Help:      "Latency of remote text-generation calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Analyses, m.CompletionOutcomes, m.CompletionLatency)
	return m
}

// ObserveAnalysis counts one dispatched analysis
func (m *Metrics) ObserveAnalysis(requestType, outcome string) {
	m.Analyses.WithLabelValues(requestType, outcome).Inc()
}

// ObserveCompletion counts one remote generation call
func (m *Metrics) ObserveCompletion(outcome string, latency time.Duration) {
	m.CompletionOutcomes.WithLabelValues(outcome).Inc()
	m.CompletionLatency.Observe(latency.Seconds())
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route, status string, latency time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}
