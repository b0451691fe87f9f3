package dto

// WebhookEvent is the envelope the chat platform POSTs to the webhook.
type WebhookEvent struct {
	Object string         `json:"object" binding:"required"`
	Entry  []WebhookEntry `json:"entry" binding:"required,dive"`
}

// WebhookEntry groups the messaging events of one page.
type WebhookEntry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging" binding:"dive"`
}

// MessagingEvent is one inbound event. Only text messages are processed;
// everything else (attachments, delivery receipts) is ignored.
type MessagingEvent struct {
	Sender    Participant      `json:"sender" binding:"required"`
	Recipient Participant      `json:"recipient"`
	Message   *IncomingMessage `json:"message,omitempty"`
}

// Participant identifies a conversation party.
type Participant struct {
	ID string `json:"id" binding:"required"`
}

// IncomingMessage carries the message payload.
type IncomingMessage struct {
	MID  string `json:"mid"`
	Text string `json:"text"`
}

// WebhookVerification binds the subscription handshake query parameters.
type WebhookVerification struct {
	Mode      string `form:"hub.mode"`
	Token     string `form:"hub.verify_token"`
	Challenge string `form:"hub.challenge"`
}

// AccountLookupRequest binds the account path parameter of the ops API.
type AccountLookupRequest struct {
	Code string `uri:"code" binding:"required,accountcode"`
}
