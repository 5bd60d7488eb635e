package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/utils/dedupe"
)

var (
	ErrAmountNotInteger = errors.New("leg amount must be an integer number of minor units")
	ErrEventDeleted     = errors.New("event has been deleted")
)

// eventService is the ingestion boundary for transaction events. It derives
// the dedupe key before insert so the store's unique index can turn repeated
// ingestion of the same upstream record into a no-op.
type eventService struct {
	eventRepo   portsrepo.EventRepository
	accountRepo portsrepo.AccountReader
}

// NewEventService creates a new event ingestion service.
func NewEventService(eventRepo portsrepo.EventRepository, accountRepo portsrepo.AccountReader) portssvc.EventSvcFacade {
	return &eventService{
		eventRepo:   eventRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.EventSvcFacade = (*eventService)(nil)

// IngestEvent validates ownership, computes the dedupe key from the request
// (external ID when present, content hash of the primary leg otherwise) and
// persists event plus legs atomically. On a dedupe-key collision the stored
// event is returned with created=false.
func (s *eventService) IngestEvent(ctx context.Context, userID string, req dto.CreateEventRequest) (*domain.Event, bool, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}
	if account.UserID != userID {
		return nil, false, apperrors.ErrForbidden
	}

	for _, leg := range req.Legs {
		if !leg.AmountMinor.IsInteger() {
			return nil, false, fmt.Errorf("%w: instrument %s amount %s", ErrAmountNotInteger, leg.InstrumentID, leg.AmountMinor)
		}
	}

	// The hash path uses only the primary (first) leg's amount: the key
	// disambiguates economically distinct events, not individual postings.
	key := dedupe.Key(req.AccountID, req.ExternalID, req.EffectiveAt, req.Legs[0].AmountMinor, req.Description)

	now := time.Now()
	event := domain.Event{
		EventID:     uuid.NewString(),
		UserID:      userID,
		AccountID:   req.AccountID,
		EffectiveAt: req.EffectiveAt,
		ExternalID:  req.ExternalID,
		Description: req.Description,
		DedupeKey:   key,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	legs := make([]domain.Leg, len(req.Legs))
	for i, legReq := range req.Legs {
		legs[i] = domain.Leg{
			LegID:        uuid.NewString(),
			EventID:      event.EventID,
			InstrumentID: legReq.InstrumentID,
			AmountMinor:  legReq.AmountMinor,
			Position:     i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	err = s.eventRepo.SaveEventWithLegs(ctx, event, legs)
	if err == nil {
		return &event, true, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		return nil, false, fmt.Errorf("failed to save event: %w", err)
	}

	// The key is already stored: the same upstream record was ingested
	// before. Resolve to the existing event instead of failing.
	existing, findErr := s.eventRepo.FindEventByDedupeKey(ctx, key)
	if findErr != nil {
		return nil, false, fmt.Errorf("failed to load existing event for dedupe key: %w", findErr)
	}
	return existing, false, nil
}

// GetEventByID retrieves one of the user's events with its legs.
func (s *eventService) GetEventByID(ctx context.Context, userID string, eventID string) (*domain.Event, []domain.Leg, error) {
	event, legs, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event.UserID != userID {
		return nil, nil, apperrors.ErrForbidden
	}
	return event, legs, nil
}

// ListEvents retrieves a page of the user's non-deleted events.
func (s *eventService) ListEvents(ctx context.Context, userID string, limit int, offset int) ([]domain.Event, error) {
	return s.eventRepo.ListEventsByUser(ctx, userID, limit, offset)
}

// DeleteEvent soft-deletes an event after checking ownership. Deleting an
// already-deleted event fails with ErrEventDeleted.
func (s *eventService) DeleteEvent(ctx context.Context, userID string, eventID string) error {
	event, _, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return apperrors.ErrForbidden
	}
	if event.IsDeleted() {
		return ErrEventDeleted
	}
	return s.eventRepo.SoftDeleteEvent(ctx, eventID, userID, time.Now())
}
