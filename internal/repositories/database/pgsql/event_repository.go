package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEventRepository struct {
	pool *pgxpool.Pool
}

// newPgxEventRepository creates a new repository for event and leg data.
func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventRepository {
	return &PgxEventRepository{pool: pool}
}

var _ portsrepo.EventRepository = (*PgxEventRepository)(nil)

func toDomainEvent(m models.Event) domain.Event {
	return domain.Event{
		EventID:     m.EventID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		EffectiveAt: m.EffectiveAt,
		ExternalID:  m.ExternalID,
		Description: m.Description,
		DedupeKey:   m.DedupeKey,
		DeletedAt:   m.DeletedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainLeg(m models.Leg) domain.Leg {
	return domain.Leg{
		LegID:        m.LegID,
		EventID:      m.EventID,
		InstrumentID: m.InstrumentID,
		AmountMinor:  m.AmountMinor,
		Position:     m.Position,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const eventColumns = `event_id, user_id, account_id, effective_at, external_id, description, dedupe_key, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var m models.Event
	var externalID sql.NullString
	err := row.Scan(
		&m.EventID, &m.UserID, &m.AccountID, &m.EffectiveAt, &externalID,
		&m.Description, &m.DedupeKey, &m.DeletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.ExternalID = externalID.String
	event := toDomainEvent(m)
	return &event, nil
}

// SaveEventWithLegs persists an event and its legs in one transaction. A
// dedupe-key collision surfaces as apperrors.ErrDuplicate with nothing
// written.
func (r *PgxEventRepository) SaveEventWithLegs(ctx context.Context, event domain.Event, legs []domain.Leg) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Empty external IDs are stored as NULL; the column only ever holds
	// genuine upstream identifiers.
	var externalID sql.NullString
	if event.ExternalID != "" {
		externalID = sql.NullString{String: event.ExternalID, Valid: true}
	}

	eventQuery := `
		INSERT INTO events (event_id, user_id, account_id, effective_at, external_id, description, dedupe_key, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, eventQuery,
		event.EventID, event.UserID, event.AccountID, event.EffectiveAt, externalID,
		event.Description, event.DedupeKey,
		event.CreatedAt, event.CreatedBy, event.LastUpdatedAt, event.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on dedupe_key
			return fmt.Errorf("event with dedupe key %s: %w", event.DedupeKey, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}

	legQuery := `
		INSERT INTO legs (leg_id, event_id, instrument_id, amount_minor, position, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, leg := range legs {
		_, err = tx.Exec(ctx, legQuery,
			leg.LegID, leg.EventID, leg.InstrumentID, leg.AmountMinor, leg.Position,
			leg.CreatedAt, leg.CreatedBy, leg.LastUpdatedAt, leg.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert leg %d: %w", leg.Position, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit event transaction: %w", err)
	}
	return nil
}

// FindEventByID retrieves an event with its legs, ordered by position.
func (r *PgxEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, []domain.Leg, error) {
	eventQuery := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1;`
	event, err := scanEvent(r.pool.QueryRow(ctx, eventQuery, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to query event: %w", err)
	}

	legQuery := `
		SELECT leg_id, event_id, instrument_id, amount_minor, position, created_at, created_by, last_updated_at, last_updated_by
		FROM legs
		WHERE event_id = $1
		ORDER BY position;
	`
	rows, err := r.pool.Query(ctx, legQuery, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	legs := []domain.Leg{}
	for rows.Next() {
		var m models.Leg
		if err := rows.Scan(
			&m.LegID, &m.EventID, &m.InstrumentID, &m.AmountMinor, &m.Position,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan leg row: %w", err)
		}
		legs = append(legs, toDomainLeg(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating leg rows: %w", err)
	}
	return event, legs, nil
}

// FindEventByDedupeKey retrieves the event carrying the given dedupe key.
func (r *PgxEventRepository) FindEventByDedupeKey(ctx context.Context, dedupeKey string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE dedupe_key = $1;`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, dedupeKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event with dedupe key %s: %w", dedupeKey, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query event by dedupe key: %w", err)
	}
	return event, nil
}

// ListEventsByUser retrieves a page of a user's non-deleted events, newest
// effective date first.
func (r *PgxEventRepository) ListEventsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY effective_at DESC, event_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var m models.Event
		var externalID sql.NullString
		if err := rows.Scan(
			&m.EventID, &m.UserID, &m.AccountID, &m.EffectiveAt, &externalID,
			&m.Description, &m.DedupeKey, &m.DeletedAt,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		m.ExternalID = externalID.String
		events = append(events, toDomainEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

// SoftDeleteEvent marks an event as deleted. Already-deleted events are left
// untouched and reported as not found.
func (r *PgxEventRepository) SoftDeleteEvent(ctx context.Context, eventID string, userID string, now time.Time) error {
	query := `
		UPDATE events
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE event_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, eventID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}
	return nil
}
