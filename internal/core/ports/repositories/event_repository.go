package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// EventReader defines read operations for ledger events and their legs.
type EventReader interface {
	// FindEventByID retrieves an event with all of its legs, ordered by
	// position. Soft-deleted events are still returned; callers decide
	// whether a deleted event is acceptable for their use case.
	FindEventByID(ctx context.Context, eventID string) (*domain.Event, []domain.Leg, error)

	// FindEventByDedupeKey retrieves the event carrying the given
	// deduplication key, if any.
	FindEventByDedupeKey(ctx context.Context, dedupeKey string) (*domain.Event, error)

	// ListEventsByUser retrieves a paginated list of a user's non-deleted
	// events, newest effective date first.
	ListEventsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Event, error)
}

// EventWriter defines write operations for ledger events.
type EventWriter interface {
	// SaveEventWithLegs persists an event and its legs atomically. The
	// event's dedupe key is unique-indexed; inserting a key that already
	// exists fails with apperrors.ErrDuplicate.
	SaveEventWithLegs(ctx context.Context, event domain.Event, legs []domain.Leg) error

	// SoftDeleteEvent marks an event as deleted by setting deleted_at.
	// Events are never physically removed.
	SoftDeleteEvent(ctx context.Context, eventID string, userID string, now time.Time) error
}

// EventRepository combines all event-related repository operations.
type EventRepository interface {
	EventReader
	EventWriter
}
