package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bankgold/bankgold/internal/commands"
	"github.com/bankgold/bankgold/internal/dto"
	"github.com/bankgold/bankgold/internal/middleware"
	"github.com/bankgold/bankgold/internal/platform/messenger"
	"github.com/gin-gonic/gin"
)

// webhookHandler receives chat platform events and replies through the Send API.
type webhookHandler struct {
	dispatcher  *commands.Dispatcher
	sender      *messenger.Client
	verifyToken string
}

// newWebhookHandler creates a new webhookHandler.
func newWebhookHandler(dispatcher *commands.Dispatcher, sender *messenger.Client, verifyToken string) *webhookHandler {
	return &webhookHandler{
		dispatcher:  dispatcher,
		sender:      sender,
		verifyToken: verifyToken,
	}
}

// verifyWebhook answers the platform's subscription handshake: echo the
// challenge on a token match, 403 on mismatch, 400 when parameters are absent.
func (h *webhookHandler) verifyWebhook(c *gin.Context) {
	var q dto.WebhookVerification
	if err := c.ShouldBindQuery(&q); err != nil || q.Mode == "" || q.Token == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if q.Mode == "subscribe" && q.Token == h.verifyToken {
		c.String(http.StatusOK, q.Challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// receiveWebhook processes inbound messaging events. The platform retries on
// non-200, so the endpoint acknowledges as long as the envelope parses; the
// reply to each sender is best-effort.
func (h *webhookHandler) receiveWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event dto.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Failed to bind webhook event", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if event.Object != "page" {
		c.Status(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()
	for _, entry := range event.Entry {
		for _, msg := range entry.Messaging {
			if msg.Message == nil || msg.Message.Text == "" {
				continue
			}
			senderID := msg.Sender.ID

			reply := h.dispatcher.Handle(ctx, senderID, msg.Message.Text)

			if err := h.sender.SendText(ctx, senderID, reply); err != nil {
				// Delivery failures are logged, never retried.
				logger.Error("Failed to send reply",
					slog.String("recipient", senderID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
}
