package main

import (
	"log"

	api "newsdesk-backend/cmd/api"
	authdomain "newsdesk-backend/internal/auth/domain"
	authrepo "newsdesk-backend/internal/auth/repository"
	authusecase "newsdesk-backend/internal/auth/usecase"
	enhancementdelivery "newsdesk-backend/internal/enhancement/delivery"
	enhancementdomain "newsdesk-backend/internal/enhancement/domain"
	enhancementrepo "newsdesk-backend/internal/enhancement/repository"
	enhancementusecase "newsdesk-backend/internal/enhancement/usecase"
	moderationdelivery "newsdesk-backend/internal/moderation/delivery"
	moderationusecase "newsdesk-backend/internal/moderation/usecase"
	quotadomain "newsdesk-backend/internal/quota/domain"
	quotarepo "newsdesk-backend/internal/quota/repository"
	quotausecase "newsdesk-backend/internal/quota/usecase"
	"newsdesk-backend/pkg/ai"
	"newsdesk-backend/pkg/config"
	"newsdesk-backend/pkg/database"
	"newsdesk-backend/pkg/scrape"
	"newsdesk-backend/pkg/translate"
)

// quotaPoolService names the shared daily pool all Gemini models draw from.
const quotaPoolService = "gemini"

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&quotadomain.QuotaRecord{},
		&enhancementdomain.ArticleEnhancement{},
		&enhancementdomain.SummaryCache{},
		&enhancementdomain.SentimentCache{},
		&enhancementdomain.QACache{},
		&enhancementdomain.CaptionCache{},
		&enhancementdomain.EnhancementCache{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authrepo.NewUserRepository(db)
	quotaRepo := quotarepo.NewQuotaRepository(db)
	artifactCacheRepo := enhancementrepo.NewArtifactCacheRepository(db)
	enhancementRepo := enhancementrepo.NewEnhancementRepository(db)

	// Quota ledger over the shared Gemini pool
	quotaService := quotausecase.NewQuotaService(quotaRepo, quotausecase.Limits{
		DailyLimit:        cfg.DailyLimit,
		ConservativeRatio: cfg.QuotaConservativeRatio,
		WarningRatio:      cfg.QuotaWarningRatio,
	}, cfg.QuotaResetTZ)

	// Model fallback chain gated by the pool quota
	selector := enhancementusecase.NewModelSelector(
		quotaService, quotaPoolService, cfg.AIPrimaryModel, cfg.AIFallbackModels, cfg.AIModelSoftCaps)

	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey)

	orchestrator := enhancementusecase.NewOrchestrator(artifactCacheRepo, selector, gemini, enhancementusecase.CacheTTLs{
		Summary:     cfg.SummaryCacheTTL,
		Sentiment:   cfg.SentimentCacheTTL,
		QA:          cfg.QACacheTTL,
		Caption:     cfg.CaptionCacheTTL,
		Enhancement: cfg.EnhancementCacheTTL,
	})

	// Strike ledger and its background sweep
	ledger := moderationusecase.NewStrikeLedger(userRepo, moderationusecase.Thresholds{
		CooldownStrike:  cfg.StrikeCooldownStrike,
		CooldownMinutes: cfg.StrikeCooldownMinutes,
		BlockDays:       cfg.StrikeBlockDays,
		AutoResetHours:  cfg.StrikeAutoResetHours,
	})
	sweeper := moderationusecase.NewStrikeSweeper(userRepo, ledger, cfg.StrikeSweepInterval, cfg.StrikeSweepWindow)
	sweeper.Start()
	defer sweeper.Stop()

	// Background batch enhancement
	tracker := enhancementusecase.NewJobTracker()
	backgroundEnhancer := enhancementusecase.NewBackgroundEnhancer(
		enhancementRepo, orchestrator, tracker, ledger, cfg.BackgroundJobDelay)

	// Cheapest model in the chain handles best-effort translation
	translationModel := cfg.AIPrimaryModel
	if len(cfg.AIFallbackModels) > 0 {
		translationModel = cfg.AIFallbackModels[len(cfg.AIFallbackModels)-1]
	}
	translator := translate.NewTranslator(gemini, translationModel)

	scraper := scrape.NewScraper()

	// Initialize use cases and HTTP handlers
	authUsecase := authusecase.NewAuthUsecase(userRepo, cfg)
	enhancementHandler := enhancementdelivery.NewEnhancementHandler(
		orchestrator, backgroundEnhancer, quotaService, ledger, scraper, translator, quotaPoolService)
	moderationHandler := moderationdelivery.NewModerationHandler(ledger)

	handler := api.NewHandler(authUsecase, enhancementHandler, moderationHandler, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
