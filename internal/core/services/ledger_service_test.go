package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/bankgold/bankgold/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwner(ctx context.Context, ownerID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListBanned(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetBalance(ctx context.Context, code string, balance decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, code, balance, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, code string, delta decimal.Decimal, updatedBy string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, code, delta, updatedBy, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) SetStatus(ctx context.Context, code string, status domain.AccountStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, code, status, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) RelinkOwner(ctx context.Context, code string, newOwnerID string, passwordHash string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, code, newOwnerID, passwordHash, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, code string, passwordHash string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, code, passwordHash, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, changes, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ArchiveRepository ---
type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) FindPage(ctx context.Context, series string, number int) (*domain.ArchivePage, error) {
	args := m.Called(ctx, series, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchivePage), args.Error(1)
}

func (m *MockArchiveRepository) FindAccount(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockArchiveRepository) ListPageAccounts(ctx context.Context, series string, number int, limit, offset int) ([]domain.Account, int, error) {
	args := m.Called(ctx, series, number, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Int(1), args.Error(2)
}

func (m *MockArchiveRepository) PageTotals(ctx context.Context, series string, number int) (int, decimal.Decimal, error) {
	args := m.Called(ctx, series, number)
	return args.Int(0), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockArchiveRepository) AvailablePages(ctx context.Context, series string) ([]domain.ArchivePage, error) {
	args := m.Called(ctx, series)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivePage), args.Error(1)
}

// --- Mock OperationRepository ---
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) SaveOperation(ctx context.Context, op domain.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

// --- Mock AllocatorService ---
type MockAllocatorService struct {
	mock.Mock
}

func (m *MockAllocatorService) NextCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAllocatorService) PeekNext(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ownerID string)  { m.Called(ownerID) }
func (m *MockSessionService) Logout(ownerID string) { m.Called(ownerID) }
func (m *MockSessionService) IsLoggedIn(ownerID string) bool {
	args := m.Called(ownerID)
	return args.Bool(0)
}
func (m *MockSessionService) Invalidate(ownerID string) { m.Called(ownerID) }

// --- Mock AuthzService ---
type MockAuthzService struct {
	mock.Mock
}

func (m *MockAuthzService) IsAdmin(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func (m *MockAuthzService) IsSuperAdmin(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func (m *MockAuthzService) HasPermission(id string, p domain.Permission) bool {
	args := m.Called(id, p)
	return args.Bool(0)
}

func (m *MockAuthzService) RoleOf(id string) (domain.Role, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.Role), args.Bool(1)
}

func (m *MockAuthzService) AddAdmin(actorID, id string, role domain.Role) error {
	args := m.Called(actorID, id, role)
	return args.Error(0)
}

func (m *MockAuthzService) RemoveAdmin(actorID, id string) error {
	args := m.Called(actorID, id)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockArchiveRepo   *MockArchiveRepository
	mockOperationRepo *MockOperationRepository
	mockAllocator     *MockAllocatorService
	mockSessions      *MockSessionService
	mockAuthz         *MockAuthzService
	cfg               *config.Config
	service           portssvc.LedgerSvc
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockArchiveRepo = new(MockArchiveRepository)
	suite.mockOperationRepo = new(MockOperationRepository)
	suite.mockAllocator = new(MockAllocatorService)
	suite.mockSessions = new(MockSessionService)
	suite.mockAuthz = new(MockAuthzService)
	suite.cfg = &config.Config{
		SuperAdminID:           "super-admin",
		InitialBalance:         decimal.NewFromInt(15),
		Currency:               "G",
		ArchiveDefaultPassword: "123456",
	}
	suite.service = services.NewLedgerService(
		suite.mockAccountRepo,
		suite.mockArchiveRepo,
		suite.mockOperationRepo,
		suite.mockAllocator,
		suite.mockSessions,
		suite.mockAuthz,
		suite.cfg,
	)
}

func liveAccount(code, ownerID string, balance int64) *domain.Account {
	return &domain.Account{
		Code:    code,
		OwnerID: ownerID,
		Balance: decimal.NewFromInt(balance),
		Status:  domain.StatusActive,
		Source:  domain.SourceLive,
	}
}

// --- CreateAccount ---

func (suite *LedgerServiceTestSuite) TestCreateAccount_AllocatesCodeAndDefaults() {
	ctx := context.Background()

	suite.mockAllocator.On("NextCode", ctx).Return("B772B", nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "B772B" &&
			a.Username == "سيف" &&
			a.Balance.Equal(decimal.NewFromInt(15)) &&
			a.Status == domain.StatusActive &&
			a.Source == domain.SourceLive &&
			utils.CheckPasswordHash("123456", a.PasswordHash)
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, "admin-1", portssvc.CreateAccountParams{Username: "سيف"})

	suite.Require().NoError(err)
	suite.Require().NotNil(acc)
	suite.Equal("B772B", acc.Code)
	suite.True(acc.Balance.Equal(decimal.NewFromInt(15)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAllocator.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_MissingUsername() {
	_, err := suite.service.CreateAccount(context.Background(), "admin-1", portssvc.CreateAccountParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- SetBalance / AdjustBalance ---

func (suite *LedgerServiceTestSuite) TestSetBalance_ReturnsPreviousBalance() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()
	suite.mockAccountRepo.On("SetBalance", ctx, "B700B", decimal.NewFromInt(200), "admin-1", mock.Anything).Return(nil).Once()
	suite.mockOperationRepo.On("SaveOperation", ctx, mock.MatchedBy(func(op domain.Operation) bool {
		return op.Kind == domain.OpModify && op.ToCode == "B700B"
	})).Return(nil).Once()

	prev, err := suite.service.SetBalance(ctx, "admin-1", "B700B", decimal.NewFromInt(200))

	suite.Require().NoError(err)
	suite.True(prev.Equal(decimal.NewFromInt(80)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSetBalance_BannedAccountRejected() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)
	acc.Status = domain.StatusBanned

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()

	_, err := suite.service.SetBalance(ctx, "admin-1", "B700B", decimal.NewFromInt(200))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountBanned)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSetBalance_NegativeRejected() {
	_, err := suite.service.SetBalance(context.Background(), "admin-1", "B700B", decimal.NewFromInt(-5))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAdjustBalance_ZeroDeltaRejected() {
	_, err := suite.service.AdjustBalance(context.Background(), "admin-1", "B700B", decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAdjustBalance_DeductRecordsDeductOperation() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 100)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()
	suite.mockAccountRepo.On("AdjustBalance", ctx, "B700B", decimal.NewFromInt(-30), "admin-1", mock.Anything).
		Return(decimal.NewFromInt(70), nil).Once()
	suite.mockOperationRepo.On("SaveOperation", ctx, mock.MatchedBy(func(op domain.Operation) bool {
		return op.Kind == domain.OpDeduct && op.Amount.Equal(decimal.NewFromInt(30))
	})).Return(nil).Once()

	newBalance, err := suite.service.AdjustBalance(ctx, "admin-1", "B700B", decimal.NewFromInt(-30))

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.NewFromInt(70)))
	suite.mockOperationRepo.AssertExpectations(suite.T())
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	sender := liveAccount("B700B", "owner-1", 100)
	recipient := liveAccount("C001C", "owner-2", 5)
	amount := decimal.NewFromInt(40)

	suite.mockAccountRepo.On("FindAccountByOwner", ctx, "owner-1").Return(sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "C001C").Return(recipient, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodesForUpdate", ctx, nil, []string{"B700B", "C001C"}).
		Return(map[string]domain.Account{"B700B": *sender, "C001C": *recipient}, nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, nil, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["B700B"].Equal(amount.Neg()) && changes["C001C"].Equal(amount)
	}), "owner-1", mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil)
	suite.mockOperationRepo.On("SaveOperation", ctx, mock.MatchedBy(func(op domain.Operation) bool {
		return op.Kind == domain.OpTransfer && op.FromCode == "B700B" && op.ToCode == "C001C"
	})).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, "owner-1", "C001C", amount)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("C001C", result.ToCode)
	suite.True(result.SenderBalance.Equal(decimal.NewFromInt(60)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFundsLeavesBalancesUntouched() {
	ctx := context.Background()
	sender := liveAccount("B700B", "owner-1", 10)
	recipient := liveAccount("C001C", "owner-2", 5)

	suite.mockAccountRepo.On("FindAccountByOwner", ctx, "owner-1").Return(sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "C001C").Return(recipient, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodesForUpdate", ctx, nil, []string{"B700B", "C001C"}).
		Return(map[string]domain.Account{"B700B": *sender, "C001C": *recipient}, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.Transfer(ctx, "owner-1", "C001C", decimal.NewFromInt(50))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ApplyBalanceChangesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_ToOwnAccountRejected() {
	ctx := context.Background()
	sender := liveAccount("B700B", "owner-1", 100)

	suite.mockAccountRepo.On("FindAccountByOwner", ctx, "owner-1").Return(sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(sender, nil).Once()

	_, err := suite.service.Transfer(ctx, "owner-1", "B700B", decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_BannedRecipientRejected() {
	ctx := context.Background()
	sender := liveAccount("B700B", "owner-1", 100)
	recipient := liveAccount("C001C", "owner-2", 5)
	bannedRecipient := *recipient
	bannedRecipient.Status = domain.StatusBanned

	suite.mockAccountRepo.On("FindAccountByOwner", ctx, "owner-1").Return(sender, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "C001C").Return(recipient, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodesForUpdate", ctx, nil, []string{"B700B", "C001C"}).
		Return(map[string]domain.Account{"B700B": *sender, "C001C": bannedRecipient}, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.Transfer(ctx, "owner-1", "C001C", decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountBanned)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ApplyBalanceChangesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_NonPositiveAmountRejected() {
	_, err := suite.service.Transfer(context.Background(), "owner-1", "C001C", decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ResolveAndMaterialize ---

func (suite *LedgerServiceTestSuite) TestResolveAndMaterialize_LiveAccountReturnedAsIs() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()

	got, err := suite.service.ResolveAndMaterialize(ctx, "admin-1", "b700b", "", "")

	suite.Require().NoError(err)
	suite.Same(acc, got)
	suite.mockArchiveRepo.AssertNotCalled(suite.T(), "FindAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestResolveAndMaterialize_ActivatesArchiveSnapshot() {
	ctx := context.Background()
	snapshot := &domain.Account{
		Code:       "A050A",
		Username:   "تاجر الذهب",
		Balance:    decimal.NewFromInt(40),
		Status:     domain.StatusActive,
		Source:     domain.SourceArchive,
		ArchiveRef: "A1",
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "A050A").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockArchiveRepo.On("FindAccount", ctx, "A050A").Return(snapshot, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "A050A" &&
			a.OwnerID == "caller-1" &&
			a.Username == snapshot.Username &&
			a.Balance.Equal(snapshot.Balance) &&
			a.Source == domain.SourceLive &&
			a.ArchiveRef == "A1"
	})).Return(nil).Once()

	acc, err := suite.service.ResolveAndMaterialize(ctx, "caller-1", "A050A", "caller-1", "123456")

	suite.Require().NoError(err)
	suite.Equal("A050A", acc.Code)
	suite.Equal(domain.SourceLive, acc.Source)
	suite.True(acc.Balance.Equal(decimal.NewFromInt(40)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAndMaterialize_LostInsertRaceReReadsWinner() {
	ctx := context.Background()
	snapshot := &domain.Account{
		Code:       "A050A",
		Username:   "تاجر الذهب",
		Balance:    decimal.NewFromInt(40),
		Source:     domain.SourceArchive,
		ArchiveRef: "A1",
	}
	// The concurrent winner already mutated the live balance.
	winner := liveAccount("A050A", "other-owner", 99)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "A050A").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockArchiveRepo.On("FindAccount", ctx, "A050A").Return(snapshot, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "A050A").Return(winner, nil).Once()

	acc, err := suite.service.ResolveAndMaterialize(ctx, "caller-1", "A050A", "caller-1", "123456")

	suite.Require().NoError(err)
	suite.True(acc.Balance.Equal(decimal.NewFromInt(99)))
	suite.Equal("other-owner", acc.OwnerID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Login ---

func (suite *LedgerServiceTestSuite) TestLogin_LiveAccountSuccess() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret99")
	suite.Require().NoError(err)
	acc := liveAccount("B700B", "owner-1", 80)
	acc.PasswordHash = hash

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()

	got, activated, err := suite.service.Login(ctx, "owner-1", "b700b", "secret99")

	suite.Require().NoError(err)
	suite.False(activated)
	suite.Equal("B700B", got.Code)
}

func (suite *LedgerServiceTestSuite) TestLogin_WrongPasswordRejected() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret99")
	suite.Require().NoError(err)
	acc := liveAccount("B700B", "owner-1", 80)
	acc.PasswordHash = hash

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()

	_, _, err = suite.service.Login(ctx, "owner-1", "B700B", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestLogin_BannedAccountRejected() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)
	acc.Status = domain.StatusBanned

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()

	_, _, err := suite.service.Login(ctx, "owner-1", "B700B", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountBanned)
}

func (suite *LedgerServiceTestSuite) TestLogin_UnlinkedLiveAccountClaimedByCaller() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret99")
	suite.Require().NoError(err)
	acc := liveAccount("B700B", "", 80)
	acc.PasswordHash = hash

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()
	suite.mockAccountRepo.On("RelinkOwner", ctx, "B700B", "caller-1", hash, "caller-1", mock.Anything).Return(nil).Once()

	got, activated, err := suite.service.Login(ctx, "caller-1", "B700B", "secret99")

	suite.Require().NoError(err)
	suite.False(activated)
	suite.Equal("caller-1", got.OwnerID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestLogin_ArchiveAccountActivatedWithDefaultPassword() {
	ctx := context.Background()
	snapshot := &domain.Account{
		Code:       "A050A",
		Username:   "تاجر الذهب",
		Balance:    decimal.NewFromInt(40),
		Source:     domain.SourceArchive,
		ArchiveRef: "A1",
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "A050A").Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockArchiveRepo.On("FindAccount", ctx, "A050A").Return(snapshot, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "A050A" && a.OwnerID == "caller-1" && a.Balance.Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()

	acc, activated, err := suite.service.Login(ctx, "caller-1", "A050A", "123456")

	suite.Require().NoError(err)
	suite.True(activated)
	suite.Equal("caller-1", acc.OwnerID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestLogin_ArchiveAccountWrongDefaultPassword() {
	ctx := context.Background()
	snapshot := &domain.Account{Code: "A050A", Source: domain.SourceArchive}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "A050A").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockArchiveRepo.On("FindAccount", ctx, "A050A").Return(snapshot, nil).Once()

	_, _, err := suite.service.Login(ctx, "caller-1", "A050A", "notdefault")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestLogin_UnknownCode() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "Z999Z").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockArchiveRepo.On("FindAccount", ctx, "Z999Z").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Login(ctx, "caller-1", "Z999Z", "nope")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- SetStatus ---

func (suite *LedgerServiceTestSuite) TestSetStatus_ArchiveOnlyAccountMaterializedWithBalanceIntact() {
	ctx := context.Background()
	snapshot := &domain.Account{
		Code:       "A050A",
		Username:   "تاجر الذهب",
		Balance:    decimal.NewFromInt(40),
		Status:     domain.StatusActive,
		Source:     domain.SourceArchive,
		ArchiveRef: "A1",
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "A050A").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockArchiveRepo.On("FindAccount", ctx, "A050A").Return(snapshot, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		// Admin mutation materializes without linking an owner.
		return a.Code == "A050A" && a.OwnerID == "" && a.Balance.Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("SetStatus", ctx, "A050A", domain.StatusBanned, "admin-1", mock.Anything).Return(nil).Once()
	suite.mockOperationRepo.On("SaveOperation", ctx, mock.MatchedBy(func(op domain.Operation) bool {
		return op.Kind == domain.OpBan && op.ToCode == "A050A"
	})).Return(nil).Once()

	err := suite.service.SetStatus(ctx, "admin-1", "A050A", domain.StatusBanned)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSetStatus_RepeatingCurrentStatusIsNoOp() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)
	acc.Status = domain.StatusBanned

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()

	err := suite.service.SetStatus(ctx, "admin-1", "B700B", domain.StatusBanned)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- RelinkOwner / ChangePassword ---

func (suite *LedgerServiceTestSuite) TestRelinkOwner_InvalidatesPreviousOwnerSession() {
	ctx := context.Background()
	acc := liveAccount("B700B", "old-owner", 80)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()
	suite.mockAccountRepo.On("RelinkOwner", ctx, "B700B", "new-owner", mock.Anything, "admin-1", mock.Anything).Return(nil).Once()
	suite.mockSessions.On("Invalidate", "old-owner").Once()
	suite.mockOperationRepo.On("SaveOperation", ctx, mock.MatchedBy(func(op domain.Operation) bool {
		return op.Kind == domain.OpLink && op.ToCode == "B700B"
	})).Return(nil).Once()

	err := suite.service.RelinkOwner(ctx, "admin-1", "B700B", "new-owner", "newpass99")

	suite.Require().NoError(err)
	suite.mockSessions.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestChangePassword_StrangerRejected() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()
	suite.mockAuthz.On("IsAdmin", "stranger").Return(false).Once()

	err := suite.service.ChangePassword(ctx, "stranger", "B700B", "newpass99")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestChangePassword_AdminAllowed() {
	ctx := context.Background()
	acc := liveAccount("B700B", "owner-1", 80)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "B700B").Return(acc, nil).Once()
	suite.mockAuthz.On("IsAdmin", "admin-1").Return(true).Once()
	suite.mockAccountRepo.On("UpdatePassword", ctx, "B700B", mock.Anything, "admin-1", mock.Anything).Return(nil).Once()

	err := suite.service.ChangePassword(ctx, "admin-1", "B700B", "newpass99")

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
