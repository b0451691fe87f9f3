package services

import (
	"sync"

	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
)

// sessionService tracks logged-in caller identities in memory. Sessions do
// not survive a restart; everyone logs in again.
type sessionService struct {
	mu       sync.RWMutex
	loggedIn map[string]struct{}
}

// NewSessionService creates the in-memory session tracker.
func NewSessionService() portssvc.SessionSvc {
	return &sessionService{loggedIn: make(map[string]struct{})}
}

var _ portssvc.SessionSvc = (*sessionService)(nil)

func (s *sessionService) Login(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn[ownerID] = struct{}{}
}

func (s *sessionService) Logout(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loggedIn, ownerID)
}

func (s *sessionService) IsLoggedIn(ownerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loggedIn[ownerID]
	return ok
}

// Invalidate force-logs-out an identity when its account is re-linked away.
func (s *sessionService) Invalidate(ownerID string) {
	s.Logout(ownerID)
}
