package models

// Instrument is the DB shape of an instrument (currency or security).
type Instrument struct {
	InstrumentID string `db:"instrument_id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	MinorUnit    int    `db:"minor_unit"`
	Kind         string `db:"kind"`
	AuditFields
}
