package repositories

import (
	"context"
	"time"

	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations against the live account store.
type AccountReader interface {
	// FindAccountByCode retrieves a live account by its canonical code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountByOwner retrieves the active account linked to an owner identity.
	FindAccountByOwner(ctx context.Context, ownerID string) (*domain.Account, error)

	// ListBanned retrieves all banned live accounts ordered by code.
	ListBanned(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations against the live account store.
type AccountWriter interface {
	// SaveAccount persists a new live account. Returns apperrors.ErrDuplicate
	// when the code already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SetBalance overwrites an account balance. The caller validates sign.
	SetBalance(ctx context.Context, code string, balance decimal.Decimal, updatedBy string, now time.Time) error

	// AdjustBalance applies a signed delta as one atomic conditional update:
	// the statement only fires while the account is active and the resulting
	// balance stays non-negative. Returns the new balance.
	AdjustBalance(ctx context.Context, code string, delta decimal.Decimal, updatedBy string, now time.Time) (decimal.Decimal, error)

	// SetStatus updates the account status; idempotent.
	SetStatus(ctx context.Context, code string, status domain.AccountStatus, updatedBy string, now time.Time) error

	// RelinkOwner reassigns the owner identity and credential of an account.
	RelinkOwner(ctx context.Context, code string, newOwnerID string, passwordHash string, updatedBy string, now time.Time) error

	// UpdatePassword replaces the credential hash of an account.
	UpdatePassword(ctx context.Context, code string, passwordHash string, updatedBy string, now time.Time) error
}

// AccountTransactionSupport defines the locking operations used by transfers.
type AccountTransactionSupport interface {
	// FindAccountsByCodesForUpdate selects accounts and locks their rows
	// within the given transaction.
	FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed balance deltas within a transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, updatedBy string, now time.Time) error
}

// TransactionManager exposes explicit transaction control.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
	TransactionManager
}
