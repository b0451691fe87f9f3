package handlers

import (
	"github.com/bankgold/bankgold/internal/commands"
	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/bankgold/bankgold/internal/middleware"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/bankgold/bankgold/internal/platform/messenger"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	svcs *services.Container,
	dispatcher *commands.Dispatcher,
	sender *messenger.Client,
	rateLimiter *limiter.Limiter,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	home := newHomeHandler(svcs.Reporting, svcs.Settings)
	r.GET("/", home.getHome)

	// Webhook endpoints: the handshake stays open, inbound traffic is
	// rate limited per source IP.
	webhook := newWebhookHandler(dispatcher, sender, cfg.VerifyToken)
	r.GET("/webhook", webhook.verifyWebhook)
	r.POST("/webhook", middleware.RateLimit(rateLimiter), webhook.receiveWebhook)

	// Read-only ops API.
	account := newAccountHandler(svcs.Ledger)
	api := r.Group("/api/v1")
	api.GET("/accounts/:code", account.getAccount)
}
