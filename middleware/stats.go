package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aeo-audit/backend/logging"
)

// ContextKeyAuditedURL is set by the audit handler so the stats
// middleware can attribute the request to the page being audited
// rather than to the API endpoint itself.
const ContextKeyAuditedURL = "auditedURL"

// StatsMiddleware tracks unique visitors and per-audit timings
func StatsMiddleware(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Track unique visitor
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track audit requests
		if c.FullPath() == "/api/audit" && c.Request.Method == "POST" {
			loadTime := float64(time.Since(start).Milliseconds())
			auditedURL := c.GetString(ContextKeyAuditedURL)
			hasError := len(c.Errors) > 0 || c.Writer.Status() >= 500
			stats.TrackAudit(auditedURL, loadTime, hasError)
		}

		// Periodically save statistics
		if stats.GetStatistics()["totalRequests"].(int)%100 == 0 {
			go stats.Save() // Save asynchronously to not block the request
		}
	}
}
