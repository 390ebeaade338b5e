package api

import (
	authdelivery "newsdesk-backend/internal/auth/delivery"
	authusecase "newsdesk-backend/internal/auth/usecase"
	enhancementdelivery "newsdesk-backend/internal/enhancement/delivery"
	moderationdelivery "newsdesk-backend/internal/moderation/delivery"
	"newsdesk-backend/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase        authusecase.AuthUsecase
	authHandler        *authdelivery.AuthHandler
	enhancementHandler *enhancementdelivery.EnhancementHandler
	moderationHandler  *moderationdelivery.ModerationHandler
	config             *config.Config
}

func NewHandler(
	authUsecase authusecase.AuthUsecase,
	enhancementHandler *enhancementdelivery.EnhancementHandler,
	moderationHandler *moderationdelivery.ModerationHandler,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:        authUsecase,
		authHandler:        authdelivery.NewAuthHandler(authUsecase),
		enhancementHandler: enhancementHandler,
		moderationHandler:  moderationHandler,
		config:             cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	SetupRoutes(r, h)

	return r.Run(addr)
}
