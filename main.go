package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aeo-audit/backend/analyzer"
	"github.com/aeo-audit/backend/logging"
	"github.com/aeo-audit/backend/middleware"
	"github.com/aeo-audit/backend/stats"
)

var (
	auditor     *analyzer.Auditor
	rateLimiter *middleware.RateLimiter
	logger      *zap.Logger
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			// No .env file, rely on the process environment
			return
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	loadEnv()
	setupGinMode()

	var err error
	logger, err = logging.New()
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize services
	auditor, err = analyzer.New(logger)
	if err != nil {
		logger.Fatal("failed to create auditor", zap.Error(err))
	}
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	storage, err := stats.NewStorage(dataDir)
	if err != nil {
		logger.Fatal("failed to create stats storage", zap.Error(err))
	}
	auditor.SetStats(storage)

	// Initialize visitor statistics
	visitorStats := logging.Initialize()

	r := gin.New()
	r.Use(gin.Recovery())

	// Add middlewares
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Metrics())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.StatsMiddleware(visitorStats))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/audit", auditPage)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"usage": visitorStats.GetStatistics(),
				"month": storage.GetCurrentStats(),
				"cache": auditor.GetCacheStats(),
			})
		})
	}

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	// Flush state on shutdown signals
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		if err := auditor.Shutdown(); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
		visitorStats.Save()
		logger.Sync()
		os.Exit(0)
	}()

	logger.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// auditRequest is the POST /api/audit body. The caller collects the
// page and its external signals; the server only analyzes.
type auditRequest struct {
	URL          string                    `json:"url" binding:"required,url"`
	HTML         string                    `json:"html" binding:"required"`
	Fetch        *analyzer.FetchResult     `json:"fetch,omitempty"`
	RobotsTxt    *analyzer.RobotsResult    `json:"robots,omitempty"`
	Sitemap      *analyzer.SitemapResult   `json:"sitemap,omitempty"`
	RenderedHTML string                    `json:"renderedHtml,omitempty"`
	PageSpeed    *analyzer.PageSpeedResult `json:"pageSpeed,omitempty"`
}

func auditPage(c *gin.Context) {
	var request auditRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid audit request: " + err.Error(),
		})
		return
	}

	c.Set(middleware.ContextKeyAuditedURL, request.URL)

	collected := &analyzer.Collected{
		Fetch:        request.Fetch,
		Robots:       request.RobotsTxt,
		Sitemap:      request.Sitemap,
		RenderedHTML: request.RenderedHTML,
		PageSpeed:    request.PageSpeed,
	}

	report, err := auditor.Audit(request.HTML, request.URL, collected)
	if err != nil {
		logger.Warn("audit failed",
			zap.String("url", request.URL),
			zap.Error(err))
		// The report is still a complete shape; surface it with the error
		c.JSON(http.StatusUnprocessableEntity, report)
		return
	}

	c.JSON(http.StatusOK, report)
}
