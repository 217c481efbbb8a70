// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records service metrics against a Prometheus registry.
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	videosCreated   prometheus.Counter
	videosGenerated prometheus.Counter
}

// NewCollector registers the service metrics with reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lavida_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lavida_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		videosCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lavida_videos_created_total",
			Help: "Videos persisted through the ingestion endpoint.",
		}),
		videosGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lavida_videos_generated_total",
			Help: "Results synthesized by the generation stub.",
		}),
	}
	reg.MustRegister(c.httpStatus, c.requestLatency, c.videosCreated, c.videosGenerated)
	return c
}

// RecordHTTPStatus counts a response by status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes a request duration.
func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// RecordVideoCreated counts a successful ingestion.
func (c *Collector) RecordVideoCreated() {
	c.videosCreated.Inc()
}

// RecordVideoGenerated counts a generation stub response.
func (c *Collector) RecordVideoGenerated() {
	c.videosGenerated.Inc()
}

// Middleware instruments every request with status and latency metrics.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		c.RecordHTTPStatus(ww.Status())
		c.RecordRequestLatency(time.Since(start))
	})
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
