package services

import (
	"context"
	"fmt"

	"github.com/bankgold/bankgold/internal/apperrors"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
)

// allocatorService issues sequential account codes off the persisted cursor.
// The cursor row is locked and advanced in one transaction, so two concurrent
// creations can never receive the same code, and the advanced state commits
// before the code is handed out.
type allocatorService struct {
	BaseService
	allocatorRepo portsrepo.AllocatorRepository
}

// NewAllocatorService creates the sequential code allocator.
func NewAllocatorService(allocatorRepo portsrepo.AllocatorRepository) portssvc.AllocatorSvc {
	return &allocatorService{allocatorRepo: allocatorRepo}
}

var _ portssvc.AllocatorSvc = (*allocatorService)(nil)

// NextCode advances the persisted cursor and returns the issued code.
func (s *allocatorService) NextCode(ctx context.Context) (string, error) {
	tx, err := s.allocatorRepo.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin allocator transaction: %w", err)
	}
	defer func() {
		_ = s.allocatorRepo.Rollback(ctx, tx)
	}()

	state, err := s.allocatorRepo.LoadStateForUpdate(ctx, tx)
	if err != nil {
		return "", err
	}

	next, ok := state.Next()
	if !ok {
		return "", fmt.Errorf("%w: allocator exhausted at %s", apperrors.ErrSeriesExhausted, state.Code())
	}

	if err := s.allocatorRepo.SaveState(ctx, tx, next); err != nil {
		return "", err
	}
	if err := s.allocatorRepo.Commit(ctx, tx); err != nil {
		return "", fmt.Errorf("failed to commit allocator state: %w", err)
	}

	return next.Code(), nil
}

// PeekNext reports the code the next NextCode call would issue, without
// advancing the cursor.
func (s *allocatorService) PeekNext(ctx context.Context) (string, error) {
	state, err := s.allocatorRepo.LoadState(ctx)
	if err != nil {
		return "", err
	}
	next, ok := state.Next()
	if !ok {
		return "", fmt.Errorf("%w: allocator exhausted at %s", apperrors.ErrSeriesExhausted, state.Code())
	}
	return next.Code(), nil
}
