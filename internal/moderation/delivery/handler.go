package delivery

import (
	"net/http"

	authdelivery "newsdesk-backend/internal/auth/delivery"
	"newsdesk-backend/internal/moderation/usecase"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	ledger *usecase.StrikeLedger
}

func NewModerationHandler(ledger *usecase.StrikeLedger) *ModerationHandler {
	return &ModerationHandler{ledger: ledger}
}

// Status reports the caller's strike count and any active block.
func (h *ModerationHandler) Status(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	status, err := h.ledger.CheckBlock(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve block state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strike_count": user.StrikeCount,
		"block":        status,
	})
}
