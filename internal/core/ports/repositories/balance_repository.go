package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// BalanceRepository is the ledger-store read capability backing balance
// aggregation. Read consistency is whatever the store's own isolation
// provides; callers add no locking or transactions of their own.
type BalanceRepository interface {
	// SumLegAmountsByUser returns one row per (account, instrument) pair the
	// user has ever posted to, with the exact integer sum of all live leg
	// amounts. Legs of soft-deleted events are excluded. Pairs without any
	// legs do not appear.
	SumLegAmountsByUser(ctx context.Context, userID string) ([]domain.AccountBalance, error)
}
