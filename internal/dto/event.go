package dto

import (
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLegRequest is a single posting within an incoming event. AmountMinor
// is the signed amount in the instrument's smallest unit; it accepts JSON
// numbers or strings, so feeds with amounts beyond float-safe range should
// send strings.
type CreateLegRequest struct {
	InstrumentID string          `json:"instrumentID" binding:"required"`
	AmountMinor  decimal.Decimal `json:"amountMinor" binding:"required"`
}

// CreateEventRequest is the ingestion payload for one transaction record.
// ExternalID, when the upstream feed provides one, makes re-ingestion of the
// same record a no-op.
type CreateEventRequest struct {
	AccountID   string             `json:"accountID" binding:"required"`
	ExternalID  string             `json:"externalID"`
	EffectiveAt time.Time          `json:"effectiveAt" binding:"required"`
	Description string             `json:"description"`
	Legs        []CreateLegRequest `json:"legs" binding:"required,min=1,dive"`
}

// LegResponse defines the data returned for a single leg.
type LegResponse struct {
	LegID        string `json:"legID"`
	InstrumentID string `json:"instrumentID"`
	AmountMinor  string `json:"amountMinor"` // Exact digit string
	Position     int    `json:"position"`
}

// EventResponse defines the data returned for an event.
type EventResponse struct {
	EventID     string        `json:"eventID"`
	AccountID   string        `json:"accountID"`
	ExternalID  string        `json:"externalID,omitempty"`
	EffectiveAt time.Time     `json:"effectiveAt"`
	Description string        `json:"description"`
	DeletedAt   *time.Time    `json:"deletedAt,omitempty"`
	Legs        []LegResponse `json:"legs,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ListEventsParams defines query parameters for listing events.
type ListEventsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToEventResponse converts a domain.Event plus its legs to a response DTO.
func ToEventResponse(event *domain.Event, legs []domain.Leg) EventResponse {
	resp := EventResponse{
		EventID:     event.EventID,
		AccountID:   event.AccountID,
		ExternalID:  event.ExternalID,
		EffectiveAt: event.EffectiveAt,
		Description: event.Description,
		DeletedAt:   event.DeletedAt,
		CreatedAt:   event.CreatedAt,
	}
	for _, leg := range legs {
		resp.Legs = append(resp.Legs, LegResponse{
			LegID:        leg.LegID,
			InstrumentID: leg.InstrumentID,
			AmountMinor:  leg.AmountMinor.String(),
			Position:     leg.Position,
		})
	}
	return resp
}

// ToListEventResponse converts a slice of events (without legs) to response DTOs.
func ToListEventResponse(events []domain.Event) []EventResponse {
	res := make([]EventResponse, len(events))
	for i := range events {
		res[i] = ToEventResponse(&events[i], nil)
	}
	return res
}
