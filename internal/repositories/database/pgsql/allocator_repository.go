package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAllocatorRepository persists the single-row allocator cursor.
type PgxAllocatorRepository struct {
	BaseRepository
}

func newPgxAllocatorRepository(pool *pgxpool.Pool) portsrepo.AllocatorRepository {
	return &PgxAllocatorRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AllocatorRepository = (*PgxAllocatorRepository)(nil)

// LoadState reads the current cursor without locking.
func (r *PgxAllocatorRepository) LoadState(ctx context.Context) (domain.AllocatorState, error) {
	var state domain.AllocatorState
	err := r.Pool.QueryRow(ctx, `SELECT letter, number FROM allocator_state WHERE id = 1;`).Scan(&state.Letter, &state.Number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AllocatorState{}, apperrors.ErrNotFound
		}
		return domain.AllocatorState{}, fmt.Errorf("failed to load allocator state: %w", err)
	}
	return state, nil
}

// LoadStateForUpdate reads and row-locks the cursor inside a transaction,
// serializing concurrent code allocations.
func (r *PgxAllocatorRepository) LoadStateForUpdate(ctx context.Context, tx pgx.Tx) (domain.AllocatorState, error) {
	var state domain.AllocatorState
	err := tx.QueryRow(ctx, `SELECT letter, number FROM allocator_state WHERE id = 1 FOR UPDATE;`).Scan(&state.Letter, &state.Number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AllocatorState{}, apperrors.ErrNotFound
		}
		return domain.AllocatorState{}, fmt.Errorf("failed to lock allocator state: %w", err)
	}
	return state, nil
}

// SaveState persists the advanced cursor inside the same transaction.
func (r *PgxAllocatorRepository) SaveState(ctx context.Context, tx pgx.Tx, state domain.AllocatorState) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE allocator_state SET letter = $1, number = $2, updated_at = $3 WHERE id = 1;`,
		state.Letter, state.Number, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save allocator state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
