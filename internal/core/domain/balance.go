package domain

import "github.com/shopspring/decimal"

// AccountBalance is the derived per-(account, instrument) aggregate of all
// live legs. It is recomputed on demand and never persisted or cached, so it
// is always consistent with the current non-deleted ledger state.
type AccountBalance struct {
	AccountID           string          `json:"accountID"`
	AccountName         string          `json:"accountName"`
	InstrumentID        string          `json:"instrumentID"`
	InstrumentCode      string          `json:"instrumentCode"`
	InstrumentMinorUnit int             `json:"instrumentMinorUnit"`
	InstrumentKind      InstrumentKind  `json:"instrumentKind"`
	AmountMinor         decimal.Decimal `json:"amountMinor"` // Exact integer sum of leg amounts
}

// Instrument reconstructs the instrument metadata carried on the balance row.
func (b AccountBalance) Instrument() Instrument {
	return Instrument{
		InstrumentID: b.InstrumentID,
		Code:         b.InstrumentCode,
		MinorUnit:    b.InstrumentMinorUnit,
		Kind:         b.InstrumentKind,
	}
}
