// Package messenger is a minimal client for the chat platform Send API.
// Outbound sends are best-effort: a failed delivery is logged by the caller
// and never retried, the sender just won't see a reply.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIURL = "https://graph.facebook.com/v13.0/me/messages"

// Client sends text messages through the platform Send API.
type Client struct {
	httpClient  *http.Client
	accessToken string
	apiURL      string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIURL overrides the Send API endpoint, used by tests.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) { c.apiURL = apiURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a Send API client.
func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		accessToken: accessToken,
		apiURL:      defaultAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendRequest struct {
	Recipient recipient `json:"recipient"`
	Message   message   `json:"message"`
}

type recipient struct {
	ID string `json:"id"`
}

type message struct {
	Text string `json:"text"`
}

// SendText delivers one text message to a recipient.
func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	body, err := json.Marshal(sendRequest{
		Recipient: recipient{ID: recipientID},
		Message:   message{Text: text},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	endpoint := c.apiURL + "?access_token=" + url.QueryEscape(c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send API returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
