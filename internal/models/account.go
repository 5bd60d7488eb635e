package models

// Account is the DB shape of a user's financial account. No balance column
// exists: balances are always derived from legs at query time.
type Account struct {
	AccountID   string `db:"account_id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
