package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(securityHeadersMiddleware())
	router.Use(corsMiddleware(cfg.Server.AllowedOrigin))
	router.Use(rateLimitMiddleware(cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow))
	router.Use(bodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	errs := errorResponder{development: cfg.IsDevelopment(), log: log}

	// Handlers
	articleHandler := NewArticleHandler(services, errs, log)
	adminHandler := NewAdminHandler(services, errs, log)
	exportHandler := NewExportHandler(services, errs, log)
	contactHandler := NewContactHandler(services, errs, log)

	guard := requireAdmin(services.Admin)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck(services))

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/stats", articleHandler.Stats)
			articles.GET("/published", articleHandler.ListPublished)
			articles.GET("/category/:category", articleHandler.ListByCategory)
			articles.GET("/:id", articleHandler.Get)
			articles.POST("", guard, articleHandler.Create)
			articles.PUT("/:id", guard, articleHandler.Update)
			articles.DELETE("/:id", guard, articleHandler.Delete)
		}

		api.POST("/contact", contactHandler.Submit)
	}

	// Admin endpoints, also served under the legacy /blog prefix
	for _, prefix := range []string{"/api/admin", "/blog/api/admin"} {
		admin := router.Group(prefix)
		admin.POST("/login", adminHandler.Login)
		admin.GET("/verify", guard, adminHandler.Verify)
		admin.GET("/export", guard, exportHandler.StreamExport)
	}

	router.NoRoute(notFound(cfg.Server.StaticDir))

	return router
}

// NewHandler wraps the router with request-scoped logging: every request gets
// a logger carrying its id and remote address, and the id is echoed as Request-Id.
func NewHandler(router http.Handler, log zerolog.Logger) http.Handler {
	h := hlog.RequestIDHandler("req_id", "Request-Id")(router)
	h = hlog.RemoteAddrHandler("remote_addr")(h)
	h = hlog.NewHandler(log)(h)
	return h
}

// healthCheck reports process liveness and store connectivity; it always answers 200
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "Disconnected"
		if services.Store != nil {
			if err := services.Store.HealthCheck(c.Request.Context()); err == nil {
				database = "Connected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"database":  database,
		})
	}
}
