package repositories

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AllocatorRepository persists the sequential code allocator cursor.
type AllocatorRepository interface {
	TransactionManager

	// LoadState reads the current cursor without locking; used for display.
	LoadState(ctx context.Context) (domain.AllocatorState, error)

	// LoadStateForUpdate reads and row-locks the cursor inside a transaction.
	LoadStateForUpdate(ctx context.Context, tx pgx.Tx) (domain.AllocatorState, error)

	// SaveState persists the advanced cursor inside the same transaction.
	SaveState(ctx context.Context, tx pgx.Tx, state domain.AllocatorState) error
}
