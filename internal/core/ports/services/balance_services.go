package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// BalanceSvcFacade exposes balance aggregation.
type BalanceSvcFacade interface {
	// ListUserBalances returns the live balance of every (account,
	// instrument) pair the user has ever posted to, computed fresh from the
	// non-deleted ledger legs. Order of the result is not significant. A
	// ledger-store failure is returned as-is; no partial result is ever
	// produced.
	ListUserBalances(ctx context.Context, userID string) ([]domain.AccountBalance, error)
}
