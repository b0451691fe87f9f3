package services

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountParams carries the inputs of account creation.
// Code empty means "take the next allocator code". Password empty means the
// constant placeholder credential. Balance nil means the configured initial
// balance (archive activation passes the snapshot balance instead).
type CreateAccountParams struct {
	OwnerID    string
	Code       string
	Username   string
	Password   string
	Balance    *decimal.Decimal
	ArchiveRef string
}

// TransferResult reports a completed transfer.
type TransferResult struct {
	Amount        decimal.Decimal
	ToCode        string
	SenderBalance decimal.Decimal // Sender balance after the debit
}

// LedgerSvc is the live, mutable account store plus the archive fallback.
type LedgerSvc interface {
	// FindByCode resolves a code against the live store first, then the
	// archive. The returned record's Source tells which tier answered.
	FindByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindByOwner resolves the caller's own active account.
	FindByOwner(ctx context.Context, ownerID string) (*domain.Account, error)

	// CreateAccount creates a live account.
	CreateAccount(ctx context.Context, actorID string, p CreateAccountParams) (*domain.Account, error)

	// ResolveAndMaterialize returns a live handle for the code, activating an
	// archive-only account on first touch. Idempotent: an existing live record
	// is returned as-is, never overwritten.
	ResolveAndMaterialize(ctx context.Context, actorID, code, ownerID, password string) (*domain.Account, error)

	// SetBalance overwrites a balance (admin). Returns the previous balance.
	SetBalance(ctx context.Context, actorID, code string, balance decimal.Decimal) (decimal.Decimal, error)

	// AdjustBalance applies a signed delta (admin add/deduct). Returns the new balance.
	AdjustBalance(ctx context.Context, actorID, code string, delta decimal.Decimal) (decimal.Decimal, error)

	// SetStatus bans or unbans an account; idempotent.
	SetStatus(ctx context.Context, actorID, code string, status domain.AccountStatus) error

	// RelinkOwner reassigns ownership and credential; the previous owner's
	// login session is invalidated.
	RelinkOwner(ctx context.Context, actorID, code, newOwnerID, password string) error

	// ChangePassword replaces an account credential. Only the owner or an
	// admin may change it.
	ChangePassword(ctx context.Context, actorID, code, newPassword string) error

	// Transfer atomically moves amount from the caller's account to the coded
	// recipient, materializing the recipient from the archive if needed.
	Transfer(ctx context.Context, fromOwnerID, toCode string, amount decimal.Decimal) (*TransferResult, error)

	// Login authenticates a caller against a code and password, activating
	// archive-only accounts that present the shared default password.
	// activated reports whether this call materialized the account.
	Login(ctx context.Context, callerID, code, password string) (acc *domain.Account, activated bool, err error)

	// ListBanned returns the banned live accounts.
	ListBanned(ctx context.Context) ([]domain.Account, error)
}
