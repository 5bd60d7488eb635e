package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/utils/dedupe"
)

// --- Mock EventRepository ---
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, []domain.Leg, error) {
	args := m.Called(ctx, eventID)
	var event *domain.Event
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.Event)
	}
	var legs []domain.Leg
	if args.Get(1) != nil {
		legs = args.Get(1).([]domain.Leg)
	}
	return event, legs, args.Error(2)
}

func (m *MockEventRepository) FindEventByDedupeKey(ctx context.Context, dedupeKey string) (*domain.Event, error) {
	args := m.Called(ctx, dedupeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) ListEventsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Event, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) SaveEventWithLegs(ctx context.Context, event domain.Event, legs []domain.Leg) error {
	args := m.Called(ctx, event, legs)
	return args.Error(0)
}

func (m *MockEventRepository) SoftDeleteEvent(ctx context.Context, eventID string, userID string, now time.Time) error {
	args := m.Called(ctx, eventID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type EventServiceTestSuite struct {
	suite.Suite
	mockEventRepo   *MockEventRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.EventSvcFacade

	userID    string
	accountID string
}

func (suite *EventServiceTestSuite) SetupTest() {
	suite.mockEventRepo = new(MockEventRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewEventService(suite.mockEventRepo, suite.mockAccountRepo)
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *EventServiceTestSuite) ownedAccount() *domain.Account {
	return &domain.Account{
		AccountID: suite.accountID,
		UserID:    suite.userID,
		Name:      "Checking",
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *EventServiceTestSuite) TestIngestEvent_Success() {
	ctx := context.Background()
	instrumentID := uuid.NewString()
	req := dto.CreateEventRequest{
		AccountID:   suite.accountID,
		ExternalID:  "bank-txn-42",
		EffectiveAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Description: "Coffee",
		Legs: []dto.CreateLegRequest{
			{InstrumentID: instrumentID, AmountMinor: decimal.NewFromInt(-450)},
		},
	}
	wantKey := suite.accountID + ":bank-txn-42"

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.ownedAccount(), nil).Once()
	suite.mockEventRepo.On("SaveEventWithLegs", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.AccountID == suite.accountID && e.UserID == suite.userID && e.DedupeKey == wantKey
	}), mock.MatchedBy(func(legs []domain.Leg) bool {
		return len(legs) == 1 && legs[0].InstrumentID == instrumentID && legs[0].AmountMinor.Equal(decimal.NewFromInt(-450)) && legs[0].Position == 0
	})).Return(nil).Once()

	event, created, err := suite.service.IngestEvent(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.True(created)
	suite.Equal(wantKey, event.DedupeKey)
	suite.Equal(req.Description, event.Description)
	suite.NotEmpty(event.EventID)
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *EventServiceTestSuite) TestIngestEvent_HashKeyWithoutExternalID() {
	ctx := context.Background()
	instrumentID := uuid.NewString()
	effectiveAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	amount := decimal.NewFromInt(-450)
	req := dto.CreateEventRequest{
		AccountID:   suite.accountID,
		EffectiveAt: effectiveAt,
		Description: "  Coffee   SHOP ",
		Legs: []dto.CreateLegRequest{
			{InstrumentID: instrumentID, AmountMinor: amount},
		},
	}
	wantKey := dedupe.Key(suite.accountID, "", effectiveAt, amount, req.Description)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.ownedAccount(), nil).Once()
	suite.mockEventRepo.On("SaveEventWithLegs", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.DedupeKey == wantKey
	}), mock.AnythingOfType("[]domain.Leg")).Return(nil).Once()

	event, created, err := suite.service.IngestEvent(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(created)
	suite.Len(event.DedupeKey, 64)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *EventServiceTestSuite) TestIngestEvent_DuplicateResolvesExisting() {
	ctx := context.Background()
	req := dto.CreateEventRequest{
		AccountID:   suite.accountID,
		ExternalID:  "bank-txn-42",
		EffectiveAt: time.Now().UTC(),
		Description: "Coffee",
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(-450)},
		},
	}
	wantKey := suite.accountID + ":bank-txn-42"
	existing := &domain.Event{
		EventID:   uuid.NewString(),
		UserID:    suite.userID,
		AccountID: suite.accountID,
		DedupeKey: wantKey,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.ownedAccount(), nil).Once()
	suite.mockEventRepo.On("SaveEventWithLegs", ctx, mock.AnythingOfType("domain.Event"), mock.AnythingOfType("[]domain.Leg")).Return(apperrors.ErrDuplicate).Once()
	suite.mockEventRepo.On("FindEventByDedupeKey", ctx, wantKey).Return(existing, nil).Once()

	event, created, err := suite.service.IngestEvent(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(existing.EventID, event.EventID)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *EventServiceTestSuite) TestIngestEvent_ForbiddenForOtherUsersAccount() {
	ctx := context.Background()
	otherAccount := &domain.Account{
		AccountID: suite.accountID,
		UserID:    uuid.NewString(),
	}
	req := dto.CreateEventRequest{
		AccountID:   suite.accountID,
		EffectiveAt: time.Now().UTC(),
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(otherAccount, nil).Once()

	event, created, err := suite.service.IngestEvent(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(event)
	suite.False(created)
	suite.mockEventRepo.AssertNotCalled(suite.T(), "SaveEventWithLegs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EventServiceTestSuite) TestIngestEvent_NonIntegerAmountRejected() {
	ctx := context.Background()
	req := dto.CreateEventRequest{
		AccountID:   suite.accountID,
		EffectiveAt: time.Now().UTC(),
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.RequireFromString("10.5")},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.ownedAccount(), nil).Once()

	event, created, err := suite.service.IngestEvent(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotInteger)
	suite.Nil(event)
	suite.False(created)
	suite.mockEventRepo.AssertNotCalled(suite.T(), "SaveEventWithLegs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EventServiceTestSuite) TestIngestEvent_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateEventRequest{
		AccountID:   suite.accountID,
		EffectiveAt: time.Now().UTC(),
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(nil, apperrors.ErrNotFound).Once()

	event, _, err := suite.service.IngestEvent(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(event)
}

func (suite *EventServiceTestSuite) TestGetEventByID_Success() {
	ctx := context.Background()
	eventID := uuid.NewString()
	expectedEvent := &domain.Event{EventID: eventID, UserID: suite.userID}
	expectedLegs := []domain.Leg{{LegID: uuid.NewString(), EventID: eventID, AmountMinor: decimal.NewFromInt(500)}}

	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(expectedEvent, expectedLegs, nil).Once()

	event, legs, err := suite.service.GetEventByID(ctx, suite.userID, eventID)

	suite.Require().NoError(err)
	suite.Equal(expectedEvent, event)
	suite.Equal(expectedLegs, legs)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *EventServiceTestSuite) TestGetEventByID_Forbidden() {
	ctx := context.Background()
	eventID := uuid.NewString()
	otherEvent := &domain.Event{EventID: eventID, UserID: uuid.NewString()}

	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(otherEvent, []domain.Leg{}, nil).Once()

	event, legs, err := suite.service.GetEventByID(ctx, suite.userID, eventID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(event)
	suite.Nil(legs)
}

func (suite *EventServiceTestSuite) TestDeleteEvent_Success() {
	ctx := context.Background()
	eventID := uuid.NewString()
	event := &domain.Event{EventID: eventID, UserID: suite.userID}

	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(event, []domain.Leg{}, nil).Once()
	suite.mockEventRepo.On("SoftDeleteEvent", ctx, eventID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteEvent(ctx, suite.userID, eventID)

	suite.Require().NoError(err)
	suite.mockEventRepo.AssertExpectations(suite.T())
}

func (suite *EventServiceTestSuite) TestDeleteEvent_AlreadyDeleted() {
	ctx := context.Background()
	eventID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)
	event := &domain.Event{EventID: eventID, UserID: suite.userID, DeletedAt: &deletedAt}

	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(event, []domain.Leg{}, nil).Once()

	err := suite.service.DeleteEvent(ctx, suite.userID, eventID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEventDeleted)
	suite.mockEventRepo.AssertNotCalled(suite.T(), "SoftDeleteEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EventServiceTestSuite) TestDeleteEvent_Forbidden() {
	ctx := context.Background()
	eventID := uuid.NewString()
	event := &domain.Event{EventID: eventID, UserID: uuid.NewString()}

	suite.mockEventRepo.On("FindEventByID", ctx, eventID).Return(event, []domain.Leg{}, nil).Once()

	err := suite.service.DeleteEvent(ctx, suite.userID, eventID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *EventServiceTestSuite) TestListEvents_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockEventRepo.On("ListEventsByUser", ctx, suite.userID, 20, 0).Return(nil, expectedErr).Once()

	events, err := suite.service.ListEvents(ctx, suite.userID, 20, 0)

	suite.Require().Error(err)
	suite.Nil(events)
	suite.ErrorIs(err, expectedErr)
}

func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}
