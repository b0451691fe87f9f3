package services_test

import (
	"testing"

	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestSessionLifecycle(t *testing.T) {
	svc := services.NewSessionService()

	assert.False(t, svc.IsLoggedIn("owner-1"))

	svc.Login("owner-1")
	assert.True(t, svc.IsLoggedIn("owner-1"))
	assert.False(t, svc.IsLoggedIn("owner-2"))

	svc.Logout("owner-1")
	assert.False(t, svc.IsLoggedIn("owner-1"))

	// Logging out an unknown identity is a no-op.
	svc.Logout("ghost")
}

func TestSessionInvalidate(t *testing.T) {
	svc := services.NewSessionService()

	svc.Login("owner-1")
	svc.Invalidate("owner-1")
	assert.False(t, svc.IsLoggedIn("owner-1"))
}
