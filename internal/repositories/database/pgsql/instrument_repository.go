package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInstrumentRepository struct {
	pool *pgxpool.Pool
}

// newPgxInstrumentRepository creates a new repository for instrument data.
func newPgxInstrumentRepository(pool *pgxpool.Pool) portsrepo.InstrumentRepository {
	return &PgxInstrumentRepository{pool: pool}
}

var _ portsrepo.InstrumentRepository = (*PgxInstrumentRepository)(nil)

func toDomainInstrument(m models.Instrument) domain.Instrument {
	return domain.Instrument{
		InstrumentID: m.InstrumentID,
		Code:         m.Code,
		Name:         m.Name,
		MinorUnit:    m.MinorUnit,
		Kind:         domain.InstrumentKind(m.Kind),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const instrumentColumns = `instrument_id, code, name, minor_unit, kind, created_at, created_by, last_updated_at, last_updated_by`

func scanInstrument(row pgx.Row) (*domain.Instrument, error) {
	var m models.Instrument
	err := row.Scan(
		&m.InstrumentID, &m.Code, &m.Name, &m.MinorUnit, &m.Kind,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	ins := toDomainInstrument(m)
	return &ins, nil
}

// SaveInstrument persists a new instrument.
func (r *PgxInstrumentRepository) SaveInstrument(ctx context.Context, instrument domain.Instrument) error {
	query := `
		INSERT INTO instruments (instrument_id, code, name, minor_unit, kind, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		instrument.InstrumentID, instrument.Code, instrument.Name, instrument.MinorUnit, string(instrument.Kind),
		instrument.CreatedAt, instrument.CreatedBy, instrument.LastUpdatedAt, instrument.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on code
			return fmt.Errorf("instrument %s: %w", instrument.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert instrument: %w", err)
	}
	return nil
}

// FindInstrumentByID retrieves an instrument by its unique identifier.
func (r *PgxInstrumentRepository) FindInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE instrument_id = $1;`
	ins, err := scanInstrument(r.pool.QueryRow(ctx, query, instrumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("instrument %s: %w", instrumentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query instrument: %w", err)
	}
	return ins, nil
}

// FindInstrumentByCode retrieves an instrument by its short code.
func (r *PgxInstrumentRepository) FindInstrumentByCode(ctx context.Context, code string) (*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE code = $1;`
	ins, err := scanInstrument(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("instrument code %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query instrument by code: %w", err)
	}
	return ins, nil
}

// ListInstruments retrieves all known instruments.
func (r *PgxInstrumentRepository) ListInstruments(ctx context.Context) ([]domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments ORDER BY code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	instruments := []domain.Instrument{}
	for rows.Next() {
		var m models.Instrument
		if err := rows.Scan(
			&m.InstrumentID, &m.Code, &m.Name, &m.MinorUnit, &m.Kind,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan instrument row: %w", err)
		}
		instruments = append(instruments, toDomainInstrument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instrument rows: %w", err)
	}
	return instruments, nil
}
