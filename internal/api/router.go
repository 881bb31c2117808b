package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timmy/solarmatch/internal/api/handler"
	"github.com/timmy/solarmatch/internal/api/middleware"
	"github.com/timmy/solarmatch/internal/config"
	"github.com/timmy/solarmatch/internal/logger"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Matches      handler.MatchService
	Rematcher    handler.Rematcher
	HealthChecks map[string]handler.HealthCheck
	Logger       *logger.Logger
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(cfg.Server.CORS))

	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	matchHandler := handler.NewMatchHandler(deps.Matches)
	adminHandler := handler.NewAdminHandler(deps.Rematcher)

	r.GET("/health", healthHandler.Health)

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		matches := v1.Group("/matches")
		matches.POST("/find", matchHandler.FindMatches)
		matches.GET("/job/:jobId", matchHandler.ListForJob)
		matches.GET("/professional/:professionalId", matchHandler.ListForProfessional)
		matches.PATCH("/:matchId/status", matchHandler.UpdateStatus)
		matches.DELETE("/:matchId", matchHandler.Delete)

		admin := v1.Group("/admin")
		admin.POST("/rematch", adminHandler.TriggerRematch)
		admin.GET("/rematch/status", adminHandler.RematchStatus)
	}

	return r
}
