package services

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
)

// ReportingSvc computes the super-admin aggregate views.
type ReportingSvc interface {
	SystemTotals(ctx context.Context) (*domain.SystemTotals, error)
	TopAccounts(ctx context.Context, limit int) ([]domain.Account, error)
}
