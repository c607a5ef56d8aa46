package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Protocol names used as the "protocol" label.
const (
	ProtocolRating = "rating"
	ProtocolToggle = "toggle"
	ProtocolTag    = "tag"
)

// Metrics records HTTP traffic and protocol outcomes. A nil *Metrics is a
// no-op recorder.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	protocol *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carsdb_http_requests_total",
		Help: "HTTP requests by route pattern and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carsdb_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	protocol := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carsdb_protocol_operations_total",
		Help: "Rating, collection toggle and tagging operations by outcome.",
	}, []string{"protocol", "outcome"})

	reg.MustRegister(
		requests,
		duration,
		protocol,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: reg,
		requests: requests,
		duration: duration,
		protocol: protocol,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveProtocol counts one protocol call as success or error.
func (m *Metrics) ObserveProtocol(protocol string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.protocol.WithLabelValues(protocol, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
