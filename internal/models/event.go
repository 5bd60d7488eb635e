package models

import "time"

// Event is the DB shape of a transaction record. dedupe_key carries a
// unique index so re-ingesting the same upstream transaction cannot insert
// a second row.
type Event struct {
	EventID     string     `db:"event_id"`
	UserID      string     `db:"user_id"`
	AccountID   string     `db:"account_id"`
	EffectiveAt time.Time  `db:"effective_at"`
	ExternalID  string     `db:"external_id"` // Empty string stored as NULL
	Description string     `db:"description"`
	DedupeKey   string     `db:"dedupe_key"`
	DeletedAt   *time.Time `db:"deleted_at"`
	AuditFields
}
