package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bankgold/bankgold/internal/commands"
	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/bankgold/bankgold/internal/platform/messenger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookTestRouter(t *testing.T, sendAPIURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SuperAdminID:           "super-admin",
		InitialBalance:         decimal.NewFromInt(15),
		Currency:               "G",
		ArchiveDefaultPassword: "123456",
		BotEnabled:             true,
		Timezone:               "UTC",
	}

	// Identity and status commands run off the in-memory services alone, so
	// the ledger side can stay unwired here.
	container := &services.Container{
		Authz:    services.NewAuthzService(cfg.SuperAdminID),
		Sessions: services.NewSessionService(),
		Settings: services.NewSettingsService(cfg),
	}
	dispatcher := commands.NewDispatcher(container, cfg, nil)
	sender := messenger.NewClient("test-token", messenger.WithAPIURL(sendAPIURL))
	h := newWebhookHandler(dispatcher, sender, "verify-secret")

	r := gin.New()
	r.GET("/webhook", h.verifyWebhook)
	r.POST("/webhook", h.receiveWebhook)
	return r
}

func TestVerifyWebhook_EchoesChallengeOnTokenMatch(t *testing.T) {
	r := webhookTestRouter(t, "http://unused.invalid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())
}

func TestVerifyWebhook_WrongTokenForbidden(t *testing.T) {
	r := webhookTestRouter(t, "http://unused.invalid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyWebhook_MissingParamsBadRequest(t *testing.T) {
	r := webhookTestRouter(t, "http://unused.invalid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveWebhook_RepliesThroughSendAPI(t *testing.T) {
	var sentBody []byte
	sendAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sentBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer sendAPI.Close()

	r := webhookTestRouter(t, sendAPI.URL)

	event := `{
		"object": "page",
		"entry": [{
			"messaging": [{
				"sender": {"id": "user-42"},
				"message": {"mid": "m1", "text": "معرفي"}
			}]
		}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(event))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EVENT_RECEIVED", w.Body.String())

	var payload struct {
		Recipient struct {
			ID string `json:"id"`
		} `json:"recipient"`
		Message struct {
			Text string `json:"text"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(sentBody, &payload))
	assert.Equal(t, "user-42", payload.Recipient.ID)
	assert.Contains(t, payload.Message.Text, "user-42")
}

func TestReceiveWebhook_NonPageObjectIgnored(t *testing.T) {
	r := webhookTestRouter(t, "http://unused.invalid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"object":"instagram","entry":[{"messaging":[]}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReceiveWebhook_MalformedBodyBadRequest(t *testing.T) {
	r := webhookTestRouter(t, "http://unused.invalid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
