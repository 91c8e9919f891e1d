// Package metrics exposes Prometheus metrics for the web server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	logins    *prometheus.CounterVec
	messages  prometheus.Counter
	swept     prometheus.Counter
}

// New registers the kwartayo collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kwartayo",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kwartayo",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kwartayo",
			Name:      "logins_total",
			Help:      "Login attempts by kind and result.",
		}, []string{"kind", "result"}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kwartayo",
			Name:      "messages_sent_total",
			Help:      "Chat messages sent by users.",
		}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kwartayo",
			Name:      "storage_keys_swept_total",
			Help:      "Expired session keys removed by the sweeper.",
		}),
	}

	m.registry.MustRegister(
		m.requests, m.durations, m.logins, m.messages, m.swept,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLogin records a login attempt. kind is "user" or "admin".
func (m *Metrics) ObserveLogin(kind string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(kind, result).Inc()
}

// MessageSent records a chat message.
func (m *Metrics) MessageSent() { m.messages.Inc() }

// Swept records expired keys removed by the sweeper.
func (m *Metrics) Swept(n int64) {
	if n > 0 {
		m.swept.Add(float64(n))
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Middleware counts and times requests. Routes are reduced to their first
// path segment to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := Route(r.URL.Path)
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.durations.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Route returns the metrics label for path: its first segment.
func Route(path string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return "/" + seg
}
