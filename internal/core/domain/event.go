package domain

import "time"

// Event is a single transaction record grouping one or more legs. Events are
// created by ingestion and never mutated afterwards, except for soft
// deletion via DeletedAt.
type Event struct {
	EventID     string     `json:"eventID"`   // Primary Key (UUID)
	UserID      string     `json:"userID"`    // Owning user (NON-NULL)
	AccountID   string     `json:"accountID"` // Owning account (NON-NULL)
	EffectiveAt time.Time  `json:"effectiveAt"`
	ExternalID  string     `json:"externalID,omitempty"` // Upstream provider's transaction ID, may be empty
	Description string     `json:"description"`
	DedupeKey   string     `json:"-"` // Derived; unique-indexed to make re-ingestion a no-op
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// IsDeleted reports whether the event has been soft deleted.
func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}
