package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// EventSvcFacade exposes the ingestion boundary for transaction events.
type EventSvcFacade interface {
	// IngestEvent computes the event's dedupe key and persists it with its
	// legs. When the key already exists, the stored event is returned and
	// the boolean is false; re-ingesting identical upstream data is a no-op.
	IngestEvent(ctx context.Context, userID string, req dto.CreateEventRequest) (*domain.Event, bool, error)

	// GetEventByID retrieves one of the user's events with its legs.
	GetEventByID(ctx context.Context, userID string, eventID string) (*domain.Event, []domain.Leg, error)

	// ListEvents retrieves a page of the user's non-deleted events.
	ListEvents(ctx context.Context, userID string, limit int, offset int) ([]domain.Event, error)

	// DeleteEvent soft-deletes one of the user's events.
	DeleteEvent(ctx context.Context, userID string, eventID string) error
}
