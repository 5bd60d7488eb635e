package dto

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/utils/moneyfmt"
)

// BalanceResponse is one (account, instrument) balance row, carrying both
// the exact minor-unit amount and ready-to-render display strings.
type BalanceResponse struct {
	AccountID           string                `json:"accountID"`
	AccountName         string                `json:"accountName"`
	InstrumentID        string                `json:"instrumentID"`
	InstrumentCode      string                `json:"instrumentCode"`
	InstrumentMinorUnit int                   `json:"instrumentMinorUnit"`
	InstrumentKind      domain.InstrumentKind `json:"instrumentKind"`
	AmountMinor         string                `json:"amountMinor"` // Exact digit string, never a float
	Amount              string                `json:"amount"`      // Exact decimal, e.g. "123.45"
	Display             string                `json:"display"`     // Locale rendering, e.g. "$123.45"
	ChangeDisplay       string                `json:"changeDisplay"`
}

// ToBalanceResponse converts one aggregate row, rendering its display
// strings for the row's instrument.
func ToBalanceResponse(b domain.AccountBalance) BalanceResponse {
	instrument := b.Instrument()
	return BalanceResponse{
		AccountID:           b.AccountID,
		AccountName:         b.AccountName,
		InstrumentID:        b.InstrumentID,
		InstrumentCode:      b.InstrumentCode,
		InstrumentMinorUnit: b.InstrumentMinorUnit,
		InstrumentKind:      b.InstrumentKind,
		AmountMinor:         b.AmountMinor.String(),
		Amount:              moneyfmt.Decimal(b.AmountMinor, b.InstrumentMinorUnit),
		Display:             moneyfmt.Display(b.AmountMinor, instrument),
		ChangeDisplay:       moneyfmt.ChangeDisplay(b.AmountMinor, instrument),
	}
}

// ToListBalanceResponse converts a slice of aggregate rows to response DTOs.
func ToListBalanceResponse(balances []domain.AccountBalance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = ToBalanceResponse(b)
	}
	return res
}
