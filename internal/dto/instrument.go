package dto

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// CreateInstrumentRequest defines the data needed to register an instrument.
type CreateInstrumentRequest struct {
	Code      string                `json:"code" binding:"required"`
	Name      string                `json:"name"`
	MinorUnit int                   `json:"minorUnit" binding:"gte=0"`
	Kind      domain.InstrumentKind `json:"kind" binding:"required,oneof=CURRENCY SECURITY"`
}

// InstrumentResponse defines the data returned for an instrument.
type InstrumentResponse struct {
	InstrumentID string                `json:"instrumentID"`
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	MinorUnit    int                   `json:"minorUnit"`
	Kind         domain.InstrumentKind `json:"kind"`
}

// ToInstrumentResponse converts a domain.Instrument to its response DTO.
func ToInstrumentResponse(ins *domain.Instrument) InstrumentResponse {
	return InstrumentResponse{
		InstrumentID: ins.InstrumentID,
		Code:         ins.Code,
		Name:         ins.Name,
		MinorUnit:    ins.MinorUnit,
		Kind:         ins.Kind,
	}
}

// ToListInstrumentResponse converts a slice of domain.Instrument to response DTOs.
func ToListInstrumentResponse(instruments []domain.Instrument) []InstrumentResponse {
	res := make([]InstrumentResponse, len(instruments))
	for i := range instruments {
		res[i] = ToInstrumentResponse(&instruments[i])
	}
	return res
}
