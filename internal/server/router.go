package server

import (
	"github.com/gin-gonic/gin"

	"github.com/healthlens/healthlens-backend/internal/http/handlers"
	"github.com/healthlens/healthlens-backend/internal/http/middleware"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log               *logger.Logger
	HealthHandler     *handlers.HealthHandler
	AnalysisHandler   *handlers.AnalysisHandler
	ClaimsHandler     *handlers.ClaimsHandler
	InfluencerHandler *handlers.InfluencerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	api := router.Group("/api")
	{
		api.GET("/health", cfg.HealthHandler.Health)
		api.GET("/test", cfg.HealthHandler.Diagnostics)

		api.POST("/analysis/claim", cfg.AnalysisHandler.AnalyzeClaim)
		api.POST("/analysis/influencer", cfg.AnalysisHandler.AnalyzeInfluencer)

		api.POST("/claims/extract", cfg.ClaimsHandler.ExtractClaims)

		api.GET("/influencers", cfg.InfluencerHandler.List)
		api.GET("/influencers/:username", cfg.InfluencerHandler.Get)
		api.GET("/influencers/:username/claims", cfg.InfluencerHandler.ListClaims)
		api.POST("/influencers/:username/content", cfg.ClaimsHandler.ProcessInfluencerContent)
	}

	return router
}
