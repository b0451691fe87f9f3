package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/bankgold/bankgold/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService implements portssvc.LedgerSvc over the two-tier store: the
// mutable live table plus the read-only archive fallback. Any mutation of an
// archive-only account first materializes it into the live table.
type ledgerService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	archiveRepo   portsrepo.ArchiveRepository
	operationRepo portsrepo.OperationRepository
	allocator     portssvc.AllocatorSvc
	sessions      portssvc.SessionSvc
	authz         portssvc.AuthzSvc
	cfg           *config.Config
}

// NewLedgerService creates the account ledger service.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	archiveRepo portsrepo.ArchiveRepository,
	operationRepo portsrepo.OperationRepository,
	allocator portssvc.AllocatorSvc,
	sessions portssvc.SessionSvc,
	authz portssvc.AuthzSvc,
	cfg *config.Config,
) portssvc.LedgerSvc {
	return &ledgerService{
		accountRepo:   accountRepo,
		archiveRepo:   archiveRepo,
		operationRepo: operationRepo,
		allocator:     allocator,
		sessions:      sessions,
		authz:         authz,
		cfg:           cfg,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// recordOperation appends to the audit log. The mutation already committed,
// so a failed audit write is logged and swallowed rather than surfaced.
func (s *ledgerService) recordOperation(ctx context.Context, kind domain.OperationKind, amount decimal.Decimal, fromCode, toCode, note, actorID string) {
	op := domain.Operation{
		OperationID: uuid.NewString(),
		Kind:        kind,
		Amount:      amount,
		FromCode:    fromCode,
		ToCode:      toCode,
		Note:        note,
		ActorID:     actorID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.operationRepo.SaveOperation(ctx, op); err != nil {
		s.LogError(ctx, err, "Failed to record operation", slog.String("kind", string(kind)), slog.String("to_code", toCode))
	}
}

// FindByCode resolves a code against the live store first, then the archive.
func (s *ledgerService) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	canonical, err := domain.NormalizeCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, canonical)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.archiveRepo.FindAccount(ctx, canonical)
}

// FindByOwner resolves the caller's own active account.
func (s *ledgerService) FindByOwner(ctx context.Context, ownerID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByOwner(ctx, ownerID)
}

// CreateAccount creates a live account. An empty code takes the next
// allocator code; an empty password takes the shared default credential.
func (s *ledgerService) CreateAccount(ctx context.Context, actorID string, p portssvc.CreateAccountParams) (*domain.Account, error) {
	if p.Username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	code := p.Code
	if code == "" {
		issued, err := s.allocator.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		code = issued
	} else {
		canonical, err := domain.NormalizeCode(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		code = canonical
	}

	balance := s.cfg.InitialBalance
	if p.Balance != nil {
		balance = *p.Balance
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", apperrors.ErrValidation)
	}

	password := p.Password
	if password == "" {
		password = s.cfg.ArchiveDefaultPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:         code,
		OwnerID:      p.OwnerID,
		Username:     p.Username,
		Balance:      balance,
		Status:       domain.StatusActive,
		Source:       domain.SourceLive,
		ArchiveRef:   p.ArchiveRef,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("code", code), slog.String("actor", actorID))
	return &account, nil
}

// ResolveAndMaterialize returns a live handle for the code, activating an
// archive-only account on first touch. A concurrent activation loses the
// insert race and re-reads the winner's row, so a diverged live balance is
// never clobbered by the snapshot.
func (s *ledgerService) ResolveAndMaterialize(ctx context.Context, actorID, code, ownerID, password string) (*domain.Account, error) {
	canonical, err := domain.NormalizeCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, canonical)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	snapshot, err := s.archiveRepo.FindAccount(ctx, canonical)
	if err != nil {
		return nil, err
	}

	balance := snapshot.Balance
	created, err := s.CreateAccount(ctx, actorID, portssvc.CreateAccountParams{
		OwnerID:    ownerID,
		Code:       canonical,
		Username:   snapshot.Username,
		Password:   password,
		Balance:    &balance,
		ArchiveRef: snapshot.ArchiveRef,
	})
	if err == nil {
		s.LogInfo(ctx, "Archive account activated", slog.String("code", canonical), slog.String("archive_ref", snapshot.ArchiveRef))
		return created, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		return s.accountRepo.FindAccountByCode(ctx, canonical)
	}
	return nil, err
}

// ensureLive materializes an archive-only account without linking an owner,
// so admin mutations can target codes that were never logged into.
func (s *ledgerService) ensureLive(ctx context.Context, actorID, code string) (*domain.Account, error) {
	return s.ResolveAndMaterialize(ctx, actorID, code, "", "")
}

// SetBalance overwrites a balance. Returns the previous balance.
func (s *ledgerService) SetBalance(ctx context.Context, actorID, code string, balance decimal.Decimal) (decimal.Decimal, error) {
	if balance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: balance cannot be negative", apperrors.ErrValidation)
	}

	acc, err := s.ensureLive(ctx, actorID, code)
	if err != nil {
		return decimal.Zero, err
	}
	if acc.IsBanned() {
		return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrAccountBanned, acc.Code)
	}

	prev := acc.Balance
	if err := s.accountRepo.SetBalance(ctx, acc.Code, balance, actorID, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}

	s.recordOperation(ctx, domain.OpModify, balance, "", acc.Code, fmt.Sprintf("balance %s -> %s", prev, balance), actorID)
	return prev, nil
}

// AdjustBalance applies a signed delta. Returns the new balance.
func (s *ledgerService) AdjustBalance(ctx context.Context, actorID, code string, delta decimal.Decimal) (decimal.Decimal, error) {
	if delta.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: amount must be non-zero", apperrors.ErrValidation)
	}

	acc, err := s.ensureLive(ctx, actorID, code)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance, err := s.accountRepo.AdjustBalance(ctx, acc.Code, delta, actorID, time.Now().UTC())
	if err != nil {
		return decimal.Zero, err
	}

	kind := domain.OpAdd
	if delta.IsNegative() {
		kind = domain.OpDeduct
	}
	s.recordOperation(ctx, kind, delta.Abs(), "", acc.Code, "", actorID)
	return newBalance, nil
}

// SetStatus bans or unbans an account. Repeating the current status succeeds.
func (s *ledgerService) SetStatus(ctx context.Context, actorID, code string, status domain.AccountStatus) error {
	acc, err := s.ensureLive(ctx, actorID, code)
	if err != nil {
		return err
	}
	if acc.Status == status {
		return nil
	}

	if err := s.accountRepo.SetStatus(ctx, acc.Code, status, actorID, time.Now().UTC()); err != nil {
		return err
	}

	kind := domain.OpBan
	if status == domain.StatusActive {
		kind = domain.OpUnban
	}
	s.recordOperation(ctx, kind, decimal.Zero, "", acc.Code, "", actorID)
	return nil
}

// RelinkOwner reassigns ownership and credential. The previous owner's login
// session is invalidated so a stale session cannot keep operating the account.
func (s *ledgerService) RelinkOwner(ctx context.Context, actorID, code, newOwnerID, password string) error {
	if newOwnerID == "" {
		return fmt.Errorf("%w: owner id is required", apperrors.ErrValidation)
	}

	acc, err := s.ensureLive(ctx, actorID, code)
	if err != nil {
		return err
	}

	if password == "" {
		password = s.cfg.ArchiveDefaultPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.RelinkOwner(ctx, acc.Code, newOwnerID, hash, actorID, time.Now().UTC()); err != nil {
		return err
	}

	if acc.OwnerID != "" && acc.OwnerID != newOwnerID {
		s.sessions.Invalidate(acc.OwnerID)
	}

	s.recordOperation(ctx, domain.OpLink, decimal.Zero, "", acc.Code, fmt.Sprintf("owner %s", newOwnerID), actorID)
	return nil
}

// ChangePassword replaces an account credential. Only the owner or an admin
// may change it.
func (s *ledgerService) ChangePassword(ctx context.Context, actorID, code, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	canonical, err := domain.NormalizeCode(code)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, canonical)
	if err != nil {
		return err
	}
	if actorID != acc.OwnerID && !s.authz.IsAdmin(actorID) {
		return fmt.Errorf("%w: not the account owner", apperrors.ErrForbidden)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.accountRepo.UpdatePassword(ctx, canonical, hash, actorID, time.Now().UTC())
}

// Transfer atomically moves amount from the caller's account to the coded
// recipient. Both rows are locked in one transaction; the debit and credit
// land together or not at all.
func (s *ledgerService) Transfer(ctx context.Context, fromOwnerID, toCode string, amount decimal.Decimal) (*portssvc.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	sender, err := s.accountRepo.FindAccountByOwner(ctx, fromOwnerID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.ensureLive(ctx, fromOwnerID, toCode)
	if err != nil {
		return nil, err
	}
	if sender.Code == recipient.Code {
		return nil, fmt.Errorf("%w: cannot transfer to own account", apperrors.ErrValidation)
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	locked, err := s.accountRepo.FindAccountsByCodesForUpdate(ctx, tx, []string{sender.Code, recipient.Code})
	if err != nil {
		return nil, err
	}

	lockedSender := locked[sender.Code]
	lockedRecipient := locked[recipient.Code]
	if lockedSender.IsBanned() {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountBanned, lockedSender.Code)
	}
	if lockedRecipient.IsBanned() {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountBanned, lockedRecipient.Code)
	}
	if lockedSender.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, lockedSender.Balance, amount)
	}

	changes := map[string]decimal.Decimal{
		lockedSender.Code:    amount.Neg(),
		lockedRecipient.Code: amount,
	}
	if err := s.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, fromOwnerID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	s.recordOperation(ctx, domain.OpTransfer, amount, lockedSender.Code, lockedRecipient.Code, "", fromOwnerID)
	s.LogInfo(ctx, "Transfer completed",
		slog.String("from", lockedSender.Code),
		slog.String("to", lockedRecipient.Code),
		slog.String("amount", amount.String()),
	)

	return &portssvc.TransferResult{
		Amount:        amount,
		ToCode:        lockedRecipient.Code,
		SenderBalance: lockedSender.Balance.Sub(amount),
	}, nil
}

// Login authenticates a caller against a code and password. An archive-only
// account presenting the shared default password is activated and linked to
// the caller.
func (s *ledgerService) Login(ctx context.Context, callerID, code, password string) (*domain.Account, bool, error) {
	canonical, err := domain.NormalizeCode(code)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, canonical)
	if err == nil {
		if acc.IsBanned() {
			return nil, false, fmt.Errorf("%w: account %s", apperrors.ErrAccountBanned, canonical)
		}
		if !utils.CheckPasswordHash(password, acc.PasswordHash) {
			return nil, false, fmt.Errorf("%w: wrong password", apperrors.ErrForbidden)
		}
		// First login of an unlinked live account claims it.
		if acc.OwnerID == "" {
			now := time.Now().UTC()
			if err := s.accountRepo.RelinkOwner(ctx, canonical, callerID, acc.PasswordHash, callerID, now); err != nil {
				return nil, false, err
			}
			acc.OwnerID = callerID
		}
		return acc, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	// Archive-only accounts all share the default credential until first login.
	if password != s.cfg.ArchiveDefaultPassword {
		if _, archiveErr := s.archiveRepo.FindAccount(ctx, canonical); archiveErr != nil {
			return nil, false, archiveErr
		}
		return nil, false, fmt.Errorf("%w: wrong password", apperrors.ErrForbidden)
	}

	activated, err := s.ResolveAndMaterialize(ctx, callerID, canonical, callerID, password)
	if err != nil {
		return nil, false, err
	}
	return activated, true, nil
}

// ListBanned returns the banned live accounts.
func (s *ledgerService) ListBanned(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListBanned(ctx)
}
