package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gqao",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gqao",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~32s
		},
		[]string{"method", "path"},
	)

	reportGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gqao",
			Subsystem: "compliance",
			Name:      "report_generation_duration_seconds",
			Help:      "Compliance report generation latency",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	violationsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gqao",
			Subsystem: "compliance",
			Name:      "violations_detected_total",
			Help:      "Violations detected in generated reports, by severity",
		},
		[]string{"severity"},
	)

	alertsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gqao",
			Subsystem: "monitor",
			Name:      "alerts_raised_total",
			Help:      "Alerts raised by monitoring passes, by severity",
		},
		[]string{"severity"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrumentHTTP records request counts and latency per method and
// route pattern.
func instrumentHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
