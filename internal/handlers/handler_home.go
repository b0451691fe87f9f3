package handlers

import (
	"net/http"

	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// homeHandler serves the public status endpoints.
type homeHandler struct {
	reporting portssvc.ReportingSvc
	settings  portssvc.SettingsSvc
}

func newHomeHandler(reporting portssvc.ReportingSvc, settings portssvc.SettingsSvc) *homeHandler {
	return &homeHandler{reporting: reporting, settings: settings}
}

// getHome reports liveness plus headline statistics.
func (h *homeHandler) getHome(c *gin.Context) {
	snap := h.settings.Snapshot()

	resp := gin.H{
		"name":    "BankGold Bot",
		"status":  "ok",
		"enabled": snap.BotEnabled,
	}

	if totals, err := h.reporting.SystemTotals(c.Request.Context()); err == nil {
		resp["accounts"] = totals.AccountCount
		resp["totalGold"] = totals.TotalGold
	}

	c.JSON(http.StatusOK, resp)
}
