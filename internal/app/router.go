package app

import (
	"code_tutor_backend/docs"
	"code_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 所有接口无需登录：单会话、无多用户隔离
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/languages", c.tutor.Languages)
		api.GET("/learning-goals/:language/:level", c.tutor.LearningGoals)
		api.POST("/chat", c.tutor.Chat)
	}
}
