package api

import (
	"net/http"

	"newsdesk-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/login", h.authHandler.Login)
			auth.POST("/refresh", h.authHandler.Refresh)
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
		}

		// Enhancement routes (protected)
		enhance := api.Group("/enhance")
		enhance.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			enhance.POST("", h.enhancementHandler.Enhance)
			enhance.POST("/background", h.enhancementHandler.EnhanceBackground)
			enhance.GET("/status", h.enhancementHandler.Status)
		}

		api.POST("/summarize", delivery.AuthMiddleware(h.authUsecase), h.enhancementHandler.Summarize)

		// Quota and moderation status (protected)
		api.GET("/quota/status", delivery.AuthMiddleware(h.authUsecase), h.enhancementHandler.QuotaStatus)
		api.GET("/moderation/status", delivery.AuthMiddleware(h.authUsecase), h.moderationHandler.Status)
	}
}
