package http

import (
	"github.com/gin-gonic/gin"
	"github.com/matkassen/backend/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/ingredients/search", handler.SearchIngredients)

		basket := v1.Group("/basket")
		{
			basket.GET("", handler.GetBasket)
			basket.POST("/items", handler.AddToBasket)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/:index", handler.GetRecipeByIndex)
		}
	}

	return router
}
