package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// InstrumentSvcFacade exposes instrument management.
type InstrumentSvcFacade interface {
	// CreateInstrument registers a new instrument.
	CreateInstrument(ctx context.Context, userID string, req dto.CreateInstrumentRequest) (*domain.Instrument, error)

	// GetInstrumentByID retrieves an instrument by its identifier.
	GetInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error)

	// ListInstruments retrieves all known instruments.
	ListInstruments(ctx context.Context) ([]domain.Instrument, error)

	// EnsureDefaultInstruments seeds the common fiat currencies on startup
	// when they are not present yet.
	EnsureDefaultInstruments(ctx context.Context) error
}
