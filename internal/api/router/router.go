package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
	"github.com/ThiagoScutari/sgp-costura/internal/api/handler"
	"github.com/ThiagoScutari/sgp-costura/internal/api/middleware"
	"github.com/ThiagoScutari/sgp-costura/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil, which disables rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	limit := middleware.RateLimit(rdb, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// batches
		batches := v1.Group("/batches")
		{
			batches.POST("/preview", h.Planning.PreviewBatches)
			batches.POST("/checkout", limit, h.Pulse.Checkout)
			batches.GET("/pending", h.Pulse.PendingBatches)
		}

		// planning
		planning := v1.Group("/planning")
		{
			planning.POST("/sync", limit, h.Planning.SyncAllocations)
			planning.GET("", h.Planning.ListSessions)
			planning.GET("/:id", h.Planning.GetSession)
		}

		// production sessions
		sessions := v1.Group("/sessions")
		{
			sessions.POST("/:id/start", limit, h.Session.Start)
			sessions.POST("/:id/pause", limit, h.Session.Pause)
			sessions.POST("/:id/resume", limit, h.Session.Resume)
			sessions.POST("/:id/stop", limit, h.Session.Stop)
			sessions.GET("/:id/efficiency", h.Session.Efficiency)
			sessions.GET("/:id/capacity", h.Capacity.Detect)
			sessions.POST("/:id/rebalance", limit, h.Capacity.Rebalance)
		}

		v1.PUT("/operators/:id/status", limit, h.Capacity.UpdateOperatorStatus)

		v1.GET("/dashboard/status", h.Pulse.LiveStatus)
		v1.GET("/analytics/dashboard", h.Analytics.Dashboard)

		shiftConfig := v1.Group("/shift-config")
		{
			shiftConfig.GET("", h.ShiftConfig.GetConfig)
			shiftConfig.PUT("", limit, h.ShiftConfig.UpdateConfig)
		}

		export := v1.Group("/export/sessions")
		{
			export.GET("/:id/report.xlsx", h.Export.SessionReport)
			export.GET("/:id/pulses.ics", h.Export.PulsePlan)
		}
	}

	return r
}
