package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// InstrumentRepository defines data access operations for instruments.
type InstrumentRepository interface {
	// FindInstrumentByID retrieves an instrument by its unique identifier.
	FindInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error)

	// FindInstrumentByCode retrieves an instrument by its short code (e.g. "USD").
	FindInstrumentByCode(ctx context.Context, code string) (*domain.Instrument, error)

	// ListInstruments retrieves all known instruments.
	ListInstruments(ctx context.Context) ([]domain.Instrument, error)

	// SaveInstrument persists a new instrument.
	SaveInstrument(ctx context.Context, instrument domain.Instrument) error
}
