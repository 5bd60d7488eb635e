package domain

// InstrumentKind distinguishes what an instrument denominates.
type InstrumentKind string

const (
	KindCurrency InstrumentKind = "CURRENCY"
	KindSecurity InstrumentKind = "SECURITY"
)

// Instrument is anything a ledger leg can be denominated in: a fiat
// currency, a stock ticker, a crypto asset, etc. MinorUnit is the number of
// fractional digits its smallest representable unit implies (2 for cents).
type Instrument struct {
	InstrumentID string         `json:"instrumentID"` // Primary Key (UUID)
	Code         string         `json:"code"`         // e.g. "USD", "AAPL"
	Name         string         `json:"name"`         // e.g. "US Dollar"
	MinorUnit    int            `json:"minorUnit"`    // Invariant: >= 0
	Kind         InstrumentKind `json:"kind"`
	AuditFields
}
