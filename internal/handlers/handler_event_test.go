package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/handlers"
	"github.com/fintrackhq/fintrack_backend/internal/utils"
	"github.com/fintrackhq/fintrack_backend/pkg/config"
)

// --- Mock EventService ---
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) IngestEvent(ctx context.Context, userID string, req dto.CreateEventRequest) (*domain.Event, bool, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Event), args.Bool(1), args.Error(2)
}

func (m *MockEventService) GetEventByID(ctx context.Context, userID string, eventID string) (*domain.Event, []domain.Leg, error) {
	args := m.Called(ctx, userID, eventID)
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

func (m *MockEventService) ListEvents(ctx context.Context, userID string, limit int, offset int) ([]domain.Event, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, userID string, eventID string) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

var _ portssvc.EventSvcFacade = (*MockEventService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ListUserBalances(ctx context.Context, userID string) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Test Suite ---
type EventHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockEventService   *MockEventService
	mockBalanceService *MockBalanceService
	jwtSecret          string
	userID             string
}

func (suite *EventHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockEventService = new(MockEventService)
	suite.mockBalanceService = new(MockBalanceService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	container := &portssvc.ServiceContainer{
		Event:   suite.mockEventService,
		Balance: suite.mockBalanceService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *EventHandlerTestSuite) authedRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	suite.Require().NoError(err)
	token, err := utils.GenerateJWT(suite.userID, suite.jwtSecret, time.Hour, "fintrack-test")
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *EventHandlerTestSuite) TestIngestEvent_Created() {
	accountID := uuid.NewString()
	body := dto.CreateEventRequest{
		AccountID:   accountID,
		ExternalID:  "bank-txn-42",
		EffectiveAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Description: "Coffee",
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(-450)},
		},
	}
	event := &domain.Event{
		EventID:     uuid.NewString(),
		UserID:      suite.userID,
		AccountID:   accountID,
		EffectiveAt: body.EffectiveAt,
		ExternalID:  body.ExternalID,
		Description: body.Description,
	}

	suite.mockEventService.On("IngestEvent", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateEventRequest) bool {
		return r.AccountID == accountID && r.ExternalID == "bank-txn-42" && len(r.Legs) == 1
	})).Return(event, true, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/events", body))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EventResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(event.EventID, resp.EventID)
	suite.mockEventService.AssertExpectations(suite.T())
}

func (suite *EventHandlerTestSuite) TestIngestEvent_DuplicateReturnsOK() {
	accountID := uuid.NewString()
	body := dto.CreateEventRequest{
		AccountID:   accountID,
		ExternalID:  "bank-txn-42",
		EffectiveAt: time.Now().UTC(),
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(-450)},
		},
	}
	existing := &domain.Event{EventID: uuid.NewString(), UserID: suite.userID, AccountID: accountID}

	suite.mockEventService.On("IngestEvent", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateEventRequest")).Return(existing, false, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/events", body))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EventResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(existing.EventID, resp.EventID)
}

func (suite *EventHandlerTestSuite) TestIngestEvent_ForbiddenAccount() {
	body := dto.CreateEventRequest{
		AccountID:   uuid.NewString(),
		EffectiveAt: time.Now().UTC(),
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(100)},
		},
	}

	suite.mockEventService.On("IngestEvent", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateEventRequest")).Return(nil, false, apperrors.ErrForbidden).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/events", body))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockEventService.AssertExpectations(suite.T())
}

func (suite *EventHandlerTestSuite) TestIngestEvent_UnknownAccount() {
	body := dto.CreateEventRequest{
		AccountID:   uuid.NewString(),
		EffectiveAt: time.Now().UTC(),
		Legs: []dto.CreateLegRequest{
			{InstrumentID: uuid.NewString(), AmountMinor: decimal.NewFromInt(100)},
		},
	}

	suite.mockEventService.On("IngestEvent", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateEventRequest")).Return(nil, false, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/events", body))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *EventHandlerTestSuite) TestIngestEvent_MissingLegsRejected() {
	body := map[string]any{
		"accountID":   uuid.NewString(),
		"effectiveAt": time.Now().UTC().Format(time.RFC3339),
		"legs":        []any{},
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/events", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEventService.AssertNotCalled(suite.T(), "IngestEvent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EventHandlerTestSuite) TestIngestEvent_Unauthenticated() {
	req, err := http.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString("{}"))
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *EventHandlerTestSuite) TestDeleteEvent_Gone() {
	eventID := uuid.NewString()

	suite.mockEventService.On("DeleteEvent", mock.Anything, suite.userID, eventID).Return(services.ErrEventDeleted).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/events/"+eventID, nil))

	suite.Equal(http.StatusGone, w.Code)
}

func (suite *EventHandlerTestSuite) TestDeleteEvent_NoContent() {
	eventID := uuid.NewString()

	suite.mockEventService.On("DeleteEvent", mock.Anything, suite.userID, eventID).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/events/"+eventID, nil))

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *EventHandlerTestSuite) TestListBalances_Success() {
	accountID := uuid.NewString()
	balances := []domain.AccountBalance{
		{
			AccountID:           accountID,
			AccountName:         "Checking",
			InstrumentID:        uuid.NewString(),
			InstrumentCode:      "USD",
			InstrumentMinorUnit: 2,
			InstrumentKind:      domain.KindCurrency,
			AmountMinor:         decimal.NewFromInt(12345),
		},
	}

	suite.mockBalanceService.On("ListUserBalances", mock.Anything, suite.userID).Return(balances, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/balances", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("12345", resp[0].AmountMinor)
	suite.Equal("123.45", resp[0].Amount)
	suite.Equal("$123.45", resp[0].Display)
	suite.Equal("+$123.45", resp[0].ChangeDisplay)
	suite.mockBalanceService.AssertExpectations(suite.T())
}

func (suite *EventHandlerTestSuite) TestListBalances_ServiceError() {
	suite.mockBalanceService.On("ListUserBalances", mock.Anything, suite.userID).Return(nil, fmt.Errorf("connection refused")).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/balances", nil))

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestEventHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EventHandlerTestSuite))
}
