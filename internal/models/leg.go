package models

import "github.com/shopspring/decimal"

// Leg is the DB shape of a single posting. amount_minor is NUMERIC(38,0);
// shopspring decimal keeps the scan and the aggregate sums exact.
type Leg struct {
	LegID        string          `db:"leg_id"`
	EventID      string          `db:"event_id"`
	InstrumentID string          `db:"instrument_id"`
	AmountMinor  decimal.Decimal `db:"amount_minor"`
	Position     int             `db:"position"`
	AuditFields
}
