package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Notes Metrics
	NotesOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation"}, // create, update, delete, archive, restore, share
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, signup/login/2fa
	)

	// Media Metrics
	MediaOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_operations_total",
			Help: "Total number of attachment store operations",
		},
		[]string{"operation", "status"}, // upload/delete, success/failure
	)

	// Speech Metrics
	SpeechConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_conversions_total",
			Help: "Total number of text-to-speech conversions",
		},
		[]string{"status"},
	)
)

// MetricsMiddleware handles basic HTTP metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		ActiveRequests.Inc()
		defer ActiveRequests.Dec()

		c.Next()

		HTTPRequestsTotal.WithLabelValues(
			method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(
			method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

// TrackNoteOperation increments the notes operation counter
func TrackNoteOperation(operation string) {
	NotesOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackSpeechConversion records text-to-speech outcomes
func TrackSpeechConversion(status string) {
	SpeechConversionsTotal.WithLabelValues(status).Inc()
}
