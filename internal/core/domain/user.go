package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON responses
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete marker
}
