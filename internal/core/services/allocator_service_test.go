package services_test

import (
	"context"
	"testing"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AllocatorRepository ---
type MockAllocatorRepository struct {
	mock.Mock
}

func (m *MockAllocatorRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAllocatorRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAllocatorRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAllocatorRepository) LoadState(ctx context.Context) (domain.AllocatorState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AllocatorState), args.Error(1)
}

func (m *MockAllocatorRepository) LoadStateForUpdate(ctx context.Context, tx pgx.Tx) (domain.AllocatorState, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(domain.AllocatorState), args.Error(1)
}

func (m *MockAllocatorRepository) SaveState(ctx context.Context, tx pgx.Tx, state domain.AllocatorState) error {
	args := m.Called(ctx, tx, state)
	return args.Error(0)
}

// --- Test Suite ---
type AllocatorServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAllocatorRepository
	service  portssvc.AllocatorSvc
}

func (suite *AllocatorServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAllocatorRepository)
	suite.service = services.NewAllocatorService(suite.mockRepo)
}

func (suite *AllocatorServiceTestSuite) TestNextCode_PersistsAdvancedStateBeforeReturning() {
	ctx := context.Background()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("LoadStateForUpdate", ctx, nil).Return(domain.AllocatorState{Letter: "B", Number: 771}, nil).Once()
	suite.mockRepo.On("SaveState", ctx, nil, domain.AllocatorState{Letter: "B", Number: 772}).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil)

	code, err := suite.service.NextCode(ctx)

	suite.Require().NoError(err)
	suite.Equal("B772B", code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AllocatorServiceTestSuite) TestNextCode_RollsOverToNextSeries() {
	ctx := context.Background()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("LoadStateForUpdate", ctx, nil).Return(domain.AllocatorState{Letter: "B", Number: 999}, nil).Once()
	suite.mockRepo.On("SaveState", ctx, nil, domain.AllocatorState{Letter: "C", Number: 1}).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil)

	code, err := suite.service.NextCode(ctx)

	suite.Require().NoError(err)
	suite.Equal("C001C", code)
}

func (suite *AllocatorServiceTestSuite) TestNextCode_ExhaustedSeries() {
	ctx := context.Background()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("LoadStateForUpdate", ctx, nil).Return(domain.AllocatorState{Letter: "Z", Number: 999}, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil)

	_, err := suite.service.NextCode(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSeriesExhausted)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveState", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AllocatorServiceTestSuite) TestPeekNext_DoesNotAdvance() {
	ctx := context.Background()

	suite.mockRepo.On("LoadState", ctx).Return(domain.AllocatorState{Letter: "B", Number: 771}, nil).Once()

	code, err := suite.service.PeekNext(ctx)

	suite.Require().NoError(err)
	suite.Equal("B772B", code)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveState", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestAllocatorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocatorServiceTestSuite))
}
