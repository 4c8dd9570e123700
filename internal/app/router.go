package app

import (
	"ap_quiz_backend/docs"
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/middleware"
	"ap_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 页面路由（需要会话）
	a.registerPageRoutes(router, c, s, cfg)

	// 2. JSON 接口
	a.registerAPIRoutes(router, c)
}

func (a *App) registerPageRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	pages := router.Group("/")
	pages.Use(middleware.SessionMiddleware(s.session, cfg.Session.CookieName))
	{
		pages.GET("/", c.quiz.Index)
		pages.GET("/form", middleware.RenewSession(s.session, cfg.Session.CookieName), c.quiz.Form)
		pages.POST("/anyname", c.quiz.Submit)
		pages.GET("/results", c.quiz.Results)
		pages.GET("/worksheet", c.quiz.Worksheet)
	}
}

func (a *App) registerAPIRoutes(router *gin.Engine, c *controllers) {
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/results/summary", c.quiz.ResultsSummary)
	}
}
