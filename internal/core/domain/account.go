package domain

// Account represents a financial account owned by a user.
// Balances are never persisted on the account; they are derived on demand
// from the account's ledger legs (see AccountBalance).
type Account struct {
	AccountID   string `json:"accountID"` // Primary Key (UUID)
	UserID      string `json:"userID"`    // Owning user (NON-NULL)
	Name        string `json:"name"`      // User-defined display name
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
