package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	"github.com/bankgold/bankgold/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `code, owner_id, username, balance, status, source, archive_ref, password_hash, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for live account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the facade.
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage.
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		Code:         d.Code,
		OwnerID:      d.OwnerID,
		Username:     d.Username,
		Balance:      d.Balance,
		Status:       string(d.Status),
		Source:       string(d.Source),
		ArchiveRef:   d.ArchiveRef,
		PasswordHash: d.PasswordHash,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account.
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Code:         m.Code,
		OwnerID:      m.OwnerID,
		Username:     m.Username,
		Balance:      m.Balance,
		Status:       domain.AccountStatus(m.Status),
		Source:       domain.AccountSource(m.Source),
		ArchiveRef:   m.ArchiveRef,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// scanAccount scans one account row. owner_id and archive_ref are nullable.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var ownerID, archiveRef sql.NullString
	err := row.Scan(
		&m.Code,
		&ownerID,
		&m.Username,
		&m.Balance,
		&m.Status,
		&m.Source,
		&archiveRef,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	m.OwnerID = ownerID.String
	m.ArchiveRef = archiveRef.String
	return m, nil
}

// SaveAccount inserts a new live account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var ownerID, archiveRef sql.NullString
	if m.OwnerID != "" {
		ownerID = sql.NullString{String: m.OwnerID, Valid: true}
	}
	if m.ArchiveRef != "" {
		archiveRef = sql.NullString{String: m.ArchiveRef, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.Code,
		ownerID,
		m.Username,
		m.Balance,
		m.Status,
		m.Source,
		archiveRef,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves a live account by its canonical code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByOwner retrieves the active account linked to an owner identity.
func (r *PgxAccountRepository) FindAccountByOwner(ctx context.Context, ownerID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 AND status = 'active';`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by owner %s: %w", ownerID, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// ListBanned retrieves all banned live accounts ordered by code.
func (r *PgxAccountRepository) ListBanned(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE status = 'banned' ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banned accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan banned account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banned account rows: %w", err)
	}
	return accounts, nil
}

// SetBalance overwrites an account balance. Banned accounts are rejected.
func (r *PgxAccountRepository) SetBalance(ctx context.Context, code string, balance decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1 AND status = 'active';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, code, balance, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set balance for account %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, code, false)
	}
	return nil
}

// AdjustBalance applies a signed delta as one atomic conditional update.
// The row only changes while the account is active and the resulting balance
// stays non-negative, which closes the read-modify-write race between
// concurrent deductions.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, code string, delta decimal.Decimal, updatedBy string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1 AND status = 'active' AND balance + $2 >= 0
		RETURNING balance;
	`
	var newBalance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, code, delta, now, updatedBy).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, r.classifyMissedWrite(ctx, code, delta.IsNegative())
		}
		return decimal.Zero, fmt.Errorf("failed to adjust balance for account %s: %w", code, err)
	}
	return newBalance, nil
}

// classifyMissedWrite turns a zero-row conditional update into the precise
// business error: unknown code, banned account, or insufficient funds.
func (r *PgxAccountRepository) classifyMissedWrite(ctx context.Context, code string, wasDebit bool) error {
	acc, err := r.FindAccountByCode(ctx, code)
	if err != nil {
		return err // ErrNotFound or infrastructure error
	}
	if acc.IsBanned() {
		return fmt.Errorf("%w: account %s", apperrors.ErrAccountBanned, code)
	}
	if wasDebit {
		return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, code)
	}
	return fmt.Errorf("balance update for account %s affected no rows", code)
}

// SetStatus updates the account status. Setting the current status again is
// a no-op success.
func (r *PgxAccountRepository) SetStatus(ctx context.Context, code string, status domain.AccountStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, code, string(status), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set status for account %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RelinkOwner reassigns the owner identity and credential of an account.
func (r *PgxAccountRepository) RelinkOwner(ctx context.Context, code string, newOwnerID string, passwordHash string, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET owner_id = $2, password_hash = $3, last_updated_at = $4, last_updated_by = $5
		WHERE code = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, code, newOwnerID, passwordHash, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to relink account %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the credential hash of an account.
func (r *PgxAccountRepository) UpdatePassword(ctx context.Context, code string, passwordHash string, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, code, passwordHash, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update password for account %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByCodesForUpdate selects accounts and locks the rows for update.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.Code] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(codes) {
		missing := []string{}
		for _, code := range codes {
			if _, found := accountsMap[code]; !found {
				missing = append(missing, code)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock accounts %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// ApplyBalanceChangesInTx applies signed balance deltas within a transaction.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`

	batch := &pgx.Batch{}
	codes := make([]string, 0, len(changes))
	for code, delta := range changes {
		if !delta.IsZero() {
			batch.Queue(query, code, delta, now, updatedBy)
			codes = append(codes, code)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", codes[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, codes[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
