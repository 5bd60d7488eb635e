package domain

import "github.com/shopspring/decimal"

// Leg is a single posting within an Event, denominated in one instrument's
// minor units. AmountMinor is a signed integer-valued decimal; shopspring's
// big.Int-backed coefficient keeps it exact at any magnitude, which matters
// because minor-unit totals can exceed int64 for large portfolios.
//
// The double-entry invariant (an event's legs balance according to the
// accounting model) is enforced at ingestion time, not re-validated by
// consumers of legs.
type Leg struct {
	LegID        string          `json:"legID"`   // Primary Key (UUID)
	EventID      string          `json:"eventID"` // FK -> events.event_id (NON-NULL)
	InstrumentID string          `json:"instrumentID"`
	AmountMinor  decimal.Decimal `json:"amountMinor"` // Signed, integer-valued
	Position     int             `json:"position"`    // Order within the event; 0 is the primary leg
	AuditFields
}
