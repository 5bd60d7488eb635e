package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// defaultCurrencies are seeded at startup so fresh installs can ingest
// common fiat transactions without registering instruments first.
var defaultCurrencies = []domain.Instrument{
	{Code: "USD", Name: "US Dollar", MinorUnit: 2, Kind: domain.KindCurrency},
	{Code: "EUR", Name: "Euro", MinorUnit: 2, Kind: domain.KindCurrency},
	{Code: "GBP", Name: "Pound Sterling", MinorUnit: 2, Kind: domain.KindCurrency},
	{Code: "JPY", Name: "Japanese Yen", MinorUnit: 0, Kind: domain.KindCurrency},
	{Code: "INR", Name: "Indian Rupee", MinorUnit: 2, Kind: domain.KindCurrency},
}

// instrumentService manages the instruments legs can be denominated in.
type instrumentService struct {
	instrumentRepo portsrepo.InstrumentRepository
}

// NewInstrumentService creates a new instrument service.
func NewInstrumentService(instrumentRepo portsrepo.InstrumentRepository) portssvc.InstrumentSvcFacade {
	return &instrumentService{instrumentRepo: instrumentRepo}
}

var _ portssvc.InstrumentSvcFacade = (*instrumentService)(nil)

// CreateInstrument registers a new instrument. Codes are stored uppercase.
func (s *instrumentService) CreateInstrument(ctx context.Context, userID string, req dto.CreateInstrumentRequest) (*domain.Instrument, error) {
	if req.MinorUnit < 0 {
		return nil, fmt.Errorf("%w: minor unit must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	instrument := domain.Instrument{
		InstrumentID: uuid.NewString(),
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:         req.Name,
		MinorUnit:    req.MinorUnit,
		Kind:         req.Kind,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.instrumentRepo.SaveInstrument(ctx, instrument); err != nil {
		return nil, fmt.Errorf("failed to save instrument: %w", err)
	}
	return &instrument, nil
}

// GetInstrumentByID retrieves an instrument by its identifier.
func (s *instrumentService) GetInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error) {
	return s.instrumentRepo.FindInstrumentByID(ctx, instrumentID)
}

// ListInstruments retrieves all known instruments.
func (s *instrumentService) ListInstruments(ctx context.Context) ([]domain.Instrument, error) {
	return s.instrumentRepo.ListInstruments(ctx)
}

// EnsureDefaultInstruments inserts the default currencies that are not
// present yet. Races with concurrent startups resolve via the code's unique
// constraint; an ErrDuplicate from a parallel insert is not a failure.
func (s *instrumentService) EnsureDefaultInstruments(ctx context.Context) error {
	now := time.Now()
	for _, def := range defaultCurrencies {
		_, err := s.instrumentRepo.FindInstrumentByCode(ctx, def.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check instrument %s: %w", def.Code, err)
		}

		instrument := def
		instrument.InstrumentID = uuid.NewString()
		instrument.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		}
		if err := s.instrumentRepo.SaveInstrument(ctx, instrument); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed instrument %s: %w", def.Code, err)
		}
		slog.Info("Seeded default instrument", slog.String("code", def.Code))
	}
	return nil
}
