package services

import (
	"fmt"
	"sync"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
)

// authzService keeps the admin role table in memory for the process lifetime.
// The super admin comes from configuration, is implicitly a general admin,
// and can never be removed.
type authzService struct {
	BaseService
	superAdminID string

	mu    sync.RWMutex
	roles map[string]domain.Role
}

// NewAuthzService creates the role-based authorization service.
func NewAuthzService(superAdminID string) portssvc.AuthzSvc {
	return &authzService{
		superAdminID: superAdminID,
		roles:        make(map[string]domain.Role),
	}
}

var _ portssvc.AuthzSvc = (*authzService)(nil)

func (s *authzService) IsAdmin(id string) bool {
	if s.IsSuperAdmin(id) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[id]
	return ok
}

func (s *authzService) IsSuperAdmin(id string) bool {
	return s.superAdminID != "" && id == s.superAdminID
}

func (s *authzService) HasPermission(id string, p domain.Permission) bool {
	if s.IsSuperAdmin(id) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[id]
	return ok && role.Has(p)
}

func (s *authzService) RoleOf(id string) (domain.Role, bool) {
	if s.IsSuperAdmin(id) {
		return domain.RoleGeneral, true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[id]
	return role, ok
}

// AddAdmin assigns a role to an identity. Super-admin only.
func (s *authzService) AddAdmin(actorID, id string, role domain.Role) error {
	if !s.IsSuperAdmin(actorID) {
		return fmt.Errorf("%w: only the super admin manages admins", apperrors.ErrForbidden)
	}
	if id == "" {
		return fmt.Errorf("%w: admin id is required", apperrors.ErrValidation)
	}
	if s.IsSuperAdmin(id) {
		return fmt.Errorf("%w: identity is the super admin", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[id]; exists {
		return fmt.Errorf("%w: admin %s already assigned", apperrors.ErrDuplicate, id)
	}
	s.roles[id] = role
	return nil
}

// RemoveAdmin drops an identity from the role table.
func (s *authzService) RemoveAdmin(actorID, id string) error {
	if !s.IsSuperAdmin(actorID) {
		return fmt.Errorf("%w: only the super admin manages admins", apperrors.ErrForbidden)
	}
	if s.IsSuperAdmin(id) {
		return fmt.Errorf("%w: the super admin cannot be removed", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[id]; !exists {
		return fmt.Errorf("%w: admin %s", apperrors.ErrNotFound, id)
	}
	delete(s.roles, id)
	return nil
}
