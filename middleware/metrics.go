package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aeo_http_requests_total",
		Help: "Total HTTP requests by path, method and status code.",
	}, []string{"path", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aeo_http_request_duration_seconds",
		Help:    "HTTP request latency by path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	auditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aeo_audits_total",
		Help: "Total audit requests by result.",
	}, []string{"result"})
)

// Metrics records request counts and latencies for Prometheus.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		requestsTotal.WithLabelValues(path, c.Request.Method, status).Inc()
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

		if path == "/api/audit" && c.Request.Method == "POST" {
			result := "ok"
			if len(c.Errors) > 0 || c.Writer.Status() >= 400 {
				result = "error"
			}
			auditsTotal.WithLabelValues(result).Inc()
		}
	}
}
