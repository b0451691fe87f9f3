package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOperationRepository appends to the audit log of mutations.
type PgxOperationRepository struct {
	BaseRepository
}

func newPgxOperationRepository(pool *pgxpool.Pool) portsrepo.OperationRepository {
	return &PgxOperationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OperationRepository = (*PgxOperationRepository)(nil)

// SaveOperation inserts one audit record.
func (r *PgxOperationRepository) SaveOperation(ctx context.Context, op domain.Operation) error {
	query := `
		INSERT INTO operations (operation_id, kind, amount, from_code, to_code, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	var fromCode sql.NullString
	if op.FromCode != "" {
		fromCode = sql.NullString{String: op.FromCode, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		op.OperationID,
		string(op.Kind),
		op.Amount,
		fromCode,
		op.ToCode,
		op.Note,
		op.ActorID,
		op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save operation %s: %w", op.OperationID, err)
	}
	return nil
}
