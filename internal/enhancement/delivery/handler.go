package delivery

import (
	"net/http"
	"strings"

	authdelivery "newsdesk-backend/internal/auth/delivery"
	"newsdesk-backend/internal/enhancement/domain"
	enhancementdto "newsdesk-backend/internal/enhancement/dto"
	"newsdesk-backend/internal/enhancement/usecase"
	moderation "newsdesk-backend/internal/moderation/usecase"
	quotausecase "newsdesk-backend/internal/quota/usecase"
	"newsdesk-backend/pkg/apperrors"
	"newsdesk-backend/pkg/scrape"
	"newsdesk-backend/pkg/translate"

	"github.com/gin-gonic/gin"
)

type EnhancementHandler struct {
	orchestrator *usecase.Orchestrator
	background   *usecase.BackgroundEnhancer
	quota        *quotausecase.QuotaService
	ledger       *moderation.StrikeLedger
	scraper      *scrape.Scraper
	translator   *translate.Translator
	quotaService string
}

func NewEnhancementHandler(
	orchestrator *usecase.Orchestrator,
	background *usecase.BackgroundEnhancer,
	quota *quotausecase.QuotaService,
	ledger *moderation.StrikeLedger,
	scraper *scrape.Scraper,
	translator *translate.Translator,
	quotaService string,
) *EnhancementHandler {
	return &EnhancementHandler{
		orchestrator: orchestrator,
		background:   background,
		quota:        quota,
		ledger:       ledger,
		scraper:      scraper,
		translator:   translator,
		quotaService: quotaService,
	}
}

func writeError(c *gin.Context, err error) {
	status, code := apperrors.StatusAndCode(err)
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}

// checkCallerBlock rejects blocked callers before any quota is spent.
func (h *EnhancementHandler) checkCallerBlock(c *gin.Context) bool {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return false
	}
	status, err := h.ledger.CheckBlock(user)
	if err != nil {
		writeError(c, err)
		return false
	}
	if status.Blocked {
		writeError(c, &apperrors.BlockedError{
			Until:   *status.BlockedUntil,
			Kind:    status.BlockType,
			Message: "account temporarily blocked, try again in " + status.RemainingText,
		})
		return false
	}
	return true
}

// resolveContent returns the article text: the raw content when given, else
// the scraped text of the URL. Both or neither is a validation error.
func (h *EnhancementHandler) resolveContent(c *gin.Context, content, url string) (string, bool) {
	hasContent := strings.TrimSpace(content) != ""
	hasURL := strings.TrimSpace(url) != ""
	if hasContent == hasURL {
		writeError(c, &apperrors.ValidationError{Message: "provide exactly one of content or url"})
		return "", false
	}
	if hasContent {
		return content, true
	}
	result, err := h.scraper.ScrapeArticle(c.Request.Context(), url)
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return result.Content, true
}

// Enhance runs the requested tasks synchronously over one article.
func (h *EnhancementHandler) Enhance(c *gin.Context) {
	if !h.checkCallerBlock(c) {
		return
	}

	var req enhancementdto.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &apperrors.ValidationError{Message: err.Error()})
		return
	}

	tasks := make([]domain.TaskKind, 0, len(req.Tasks))
	for _, name := range req.Tasks {
		kind := domain.TaskKind(name)
		if !domain.ValidTaskKind(kind) {
			writeError(c, &apperrors.ValidationError{Message: "unknown task " + name})
			return
		}
		tasks = append(tasks, kind)
	}

	content, ok := h.resolveContent(c, req.Content, req.URL)
	if !ok {
		return
	}

	outcomes, err := h.orchestrator.Enhance(c.Request.Context(), content, tasks)
	if err != nil {
		writeError(c, err)
		return
	}

	results := gin.H{}
	taskErrors := gin.H{}
	for task, outcome := range outcomes {
		if outcome.Err != nil {
			_, code := apperrors.StatusAndCode(outcome.Err)
			taskErrors[string(task)] = code
			continue
		}
		results[string(task)] = outcome.Value
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "errors": taskErrors})
}

// Summarize returns a style/language summary variant, optionally translated.
func (h *EnhancementHandler) Summarize(c *gin.Context) {
	if !h.checkCallerBlock(c) {
		return
	}

	var req enhancementdto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &apperrors.ValidationError{Message: err.Error()})
		return
	}
	style := req.Style
	if style == "" {
		style = "standard"
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	content, ok := h.resolveContent(c, req.Content, req.URL)
	if !ok {
		return
	}

	summary, err := h.orchestrator.Summarize(c.Request.Context(), content, style, language)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.TranslateTo != "" && req.TranslateTo != language {
		summary = h.translator.Translate(c.Request.Context(), summary, req.TranslateTo)
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "style": style, "language": language})
}

// EnhanceBackground schedules a fire-and-forget batch. Blocked callers are
// declined silently inside the job layer, so this always returns 202.
func (h *EnhancementHandler) EnhanceBackground(c *gin.Context) {
	var req enhancementdto.BackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &apperrors.ValidationError{Message: err.Error()})
		return
	}

	ids := h.background.Start(authdelivery.CurrentUser(c), req.Articles)
	c.JSON(http.StatusAccepted, enhancementdto.BackgroundResponse{
		ArticleIDs: ids,
		Accepted:   len(ids) > 0,
	})
}

// Status reports batch progress for comma-separated article ids.
func (h *EnhancementHandler) Status(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		writeError(c, &apperrors.ValidationError{Message: "ids query parameter is required"})
		return
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	status, err := h.background.GetStatus(ids)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// QuotaStatus reports today's usage snapshot for the shared AI pool.
func (h *EnhancementHandler) QuotaStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.quota.Status(h.quotaService))
}
