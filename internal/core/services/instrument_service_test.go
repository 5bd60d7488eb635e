package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// --- Mock InstrumentRepository ---
type MockInstrumentRepository struct {
	mock.Mock
}

func (m *MockInstrumentRepository) FindInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error) {
	args := m.Called(ctx, instrumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) FindInstrumentByCode(ctx context.Context, code string) (*domain.Instrument, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) ListInstruments(ctx context.Context) ([]domain.Instrument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) SaveInstrument(ctx context.Context, instrument domain.Instrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}

// --- Test Suite ---
type InstrumentServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInstrumentRepository
	service  portssvc.InstrumentSvcFacade
}

func (suite *InstrumentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInstrumentRepository)
	suite.service = services.NewInstrumentService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *InstrumentServiceTestSuite) TestCreateInstrument_UppercasesCode() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateInstrumentRequest{
		Code:      " aapl ",
		Name:      "Apple Inc.",
		MinorUnit: 4,
		Kind:      domain.KindSecurity,
	}

	suite.mockRepo.On("SaveInstrument", ctx, mock.MatchedBy(func(ins domain.Instrument) bool {
		return ins.Code == "AAPL" && ins.MinorUnit == 4 && ins.Kind == domain.KindSecurity
	})).Return(nil).Once()

	instrument, err := suite.service.CreateInstrument(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal("AAPL", instrument.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InstrumentServiceTestSuite) TestCreateInstrument_NegativeMinorUnit() {
	ctx := context.Background()
	req := dto.CreateInstrumentRequest{
		Code:      "BAD",
		MinorUnit: -1,
		Kind:      domain.KindCurrency,
	}

	instrument, err := suite.service.CreateInstrument(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(instrument)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInstrument", mock.Anything, mock.Anything)
}

func (suite *InstrumentServiceTestSuite) TestEnsureDefaultInstruments_AllPresent() {
	ctx := context.Background()

	suite.mockRepo.On("FindInstrumentByCode", ctx, mock.AnythingOfType("string")).Return(&domain.Instrument{}, nil)

	err := suite.service.EnsureDefaultInstruments(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInstrument", mock.Anything, mock.Anything)
}

func (suite *InstrumentServiceTestSuite) TestEnsureDefaultInstruments_SeedsMissing() {
	ctx := context.Background()

	suite.mockRepo.On("FindInstrumentByCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveInstrument", ctx, mock.AnythingOfType("domain.Instrument")).Return(nil)

	err := suite.service.EnsureDefaultInstruments(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveInstrument", 5)
}

func (suite *InstrumentServiceTestSuite) TestEnsureDefaultInstruments_ToleratesDuplicateRace() {
	ctx := context.Background()

	suite.mockRepo.On("FindInstrumentByCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveInstrument", ctx, mock.AnythingOfType("domain.Instrument")).Return(apperrors.ErrDuplicate)

	err := suite.service.EnsureDefaultInstruments(ctx)

	suite.Require().NoError(err)
}

func TestInstrumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InstrumentServiceTestSuite))
}
