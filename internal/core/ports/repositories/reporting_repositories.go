package repositories

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
)

// ReportingRepository aggregates over the live store and the archive,
// counting each code exactly once (the live copy shadows the archive row).
type ReportingRepository interface {
	// SystemTotals computes whole-system balance statistics.
	SystemTotals(ctx context.Context) (*domain.SystemTotals, error)

	// TopAccounts returns the highest non-banned, non-empty accounts by balance.
	TopAccounts(ctx context.Context, limit int) ([]domain.Account, error)
}
