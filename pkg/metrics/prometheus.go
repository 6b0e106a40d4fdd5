// Package metrics provides Prometheus instrumentation for the ERouter dispatcher.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route labels used for requests that never reached a route's handler chain.
const (
	RoutePreflight = "preflight"
	RouteNotFound  = "not_found"
)

// Config defines the configuration for a Collector.
type Config struct {
	Registry  *prometheus.Registry // Registry to register metrics with (a new one is created if nil)
	Namespace string               // Namespace for metrics
	Subsystem string               // Subsystem for metrics
	Buckets   []float64            // Latency histogram buckets (prometheus.DefBuckets if empty)
}

// Collector records dispatch metrics: request counts by route and status,
// dispatch latency, and how each handler chain terminated.
// It is safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	chains   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
// It returns an error if any metric is already registered with the registry.
func NewCollector(config Config) (*Collector, error) {
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	buckets := config.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	c := &Collector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "requests_total",
			Help:      "Total number of dispatched requests",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Time spent dispatching a request",
			Buckets:   buckets,
		}, []string{"method", "route"}),
		chains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "handler_chains_total",
			Help:      "Handler chain executions by outcome",
		}, []string{"route", "outcome"}),
	}

	for _, collector := range []prometheus.Collector{c.requests, c.latency, c.chains} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveRequest records one dispatched request.
// route is the matched pattern, or one of RoutePreflight and RouteNotFound.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveChain records how a route's handler chain terminated.
func (c *Collector) ObserveChain(route, outcome string) {
	c.chains.WithLabelValues(route, outcome).Inc()
}

// Registry returns the registry the collector's metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
