package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/forgelabs/forge-backend/internal/handlers"
	"github.com/forgelabs/forge-backend/internal/middleware"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AllowOrigins    []string
	ManifestHandler *handlers.ManifestHandler
	SessionHandler  *handlers.SessionHandler
	OptimiseHandler *handlers.OptimiseHandler
	GoalHandler     *handlers.GoalHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Server spans must exist before AttachTraceContext reads them.
	router.Use(otelgin.Middleware("forge-backend"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v2")
	{
		api.GET("/manifest", cfg.ManifestHandler.GetManifest)

		api.POST("/sessions", cfg.SessionHandler.Create)
		api.GET("/sessions/:id", cfg.SessionHandler.Get)
		api.DELETE("/sessions/:id", cfg.SessionHandler.Delete)
		api.POST("/sessions/:id/goal", cfg.SessionHandler.SetGoal)
		api.POST("/sessions/:id/fields", cfg.SessionHandler.SetField)
		api.POST("/sessions/:id/unlock", cfg.SessionHandler.Unlock)
		api.POST("/sessions/:id/optimise", cfg.SessionHandler.Optimise)

		api.POST("/optimise", cfg.OptimiseHandler.OptimiseSealed)
		api.POST("/goal/suggest", cfg.GoalHandler.Suggest)
	}

	return router
}
