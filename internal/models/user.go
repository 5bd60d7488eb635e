package models

import "time"

// User is the DB shape of an application user.
type User struct {
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	DeletedAt    *time.Time `db:"deleted_at"`
	AuditFields
}
