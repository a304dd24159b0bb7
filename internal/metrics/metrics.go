package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mortgage"

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	registry         *prometheus.Registry
	evaluations      *prometheus.CounterVec
	evaluationErrors *prometheus.CounterVec
	rateFallbacks    *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluated applications by country and status.",
		}, []string{"country", "status"}),
		evaluationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_errors_total",
			Help:      "Rejected applications by error kind.",
		}, []string{"kind"}),
		rateFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_fallbacks_total",
			Help:      "Evaluations that used the static rate table.",
		}, []string{"country"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache and outcome.",
		}, []string{"cache", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.evaluations,
		m.evaluationErrors,
		m.rateFallbacks,
		m.cacheLookups,
		m.requests,
		m.requestDuration,
	)
	return m
}

// Handler exposes the registry for scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEvaluation counts one evaluated application
func (m *Metrics) ObserveEvaluation(country, status string, ratesFallback bool) {
	m.evaluations.WithLabelValues(country, status).Inc()
	if ratesFallback {
		m.rateFallbacks.WithLabelValues(country).Inc()
	}
}

// ObserveEvaluationError counts one rejected application
func (m *Metrics) ObserveEvaluationError(kind string) {
	m.evaluationErrors.WithLabelValues(kind).Inc()
}

// ObserveCache counts one cache lookup
func (m *Metrics) ObserveCache(cache, outcome string) {
	m.cacheLookups.WithLabelValues(cache, outcome).Inc()
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route, code string, seconds float64) {
	m.requests.WithLabelValues(method, route, code).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}
