package api

import (
	"github.com/JustJay7/court-scheduler/internal/cache"
	"github.com/JustJay7/court-scheduler/internal/cases"
	"github.com/JustJay7/court-scheduler/internal/config"
	"github.com/JustJay7/court-scheduler/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, service *cases.Service, c cache.Cache, logger *logger.Logger, cfg *config.Config) {
	h := NewHandlers(db, service, c, logger, cfg)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		// Dashboard
		api.GET("/assigned-cases", h.AssignedCases)
		api.GET("/judges/:judgeId/assigned-cases", h.JudgeAssignedCases)
		api.GET("/judges/:judgeId/cases", h.ListJudgeCases)

		// Case records
		api.POST("/cases", h.CreateCase)
		api.POST("/cases/import", h.ImportCases)
		api.GET("/cases/:id", h.GetCase)
		api.PUT("/cases/:id", h.UpdateCase)
		api.DELETE("/cases/:id", h.DeleteCase)

		api.GET("/cache/stats", h.CacheStats)
	}
}
