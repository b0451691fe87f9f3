package handlers

import (
	"errors"
	"net/http"

	"github.com/bankgold/bankgold/internal/apperrors"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler exposes the read-only ops lookup. Balances and credentials
// stay off this surface; it only answers existence and status.
type accountHandler struct {
	ledger portssvc.LedgerSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ledger portssvc.LedgerSvc) *accountHandler {
	return &accountHandler{ledger: ledger}
}

// getAccount resolves a code against both tiers and reports its public shape.
func (h *accountHandler) getAccount(c *gin.Context) {
	var req dto.AccountLookupRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account code"})
		return
	}

	acc, err := h.ledger.FindByCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     acc.Code,
		"username": acc.Username,
		"status":   acc.Status,
		"source":   acc.Source,
	})
}
