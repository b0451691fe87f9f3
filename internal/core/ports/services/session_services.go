package services

// SessionSvc tracks logged-in caller identities for the process lifetime.
// Sessions are not persisted; a restart logs everyone out.
type SessionSvc interface {
	Login(ownerID string)
	Logout(ownerID string)
	IsLoggedIn(ownerID string) bool

	// Invalidate force-logs-out an identity, used when an account is
	// re-linked away from its previous owner.
	Invalidate(ownerID string)
}
