package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
)

// balanceService computes live balances from the ledger store. It keeps no
// state of its own and issues exactly one read per call; read consistency is
// delegated to the store's isolation guarantees.
type balanceService struct {
	balanceRepo portsrepo.BalanceRepository
}

// NewBalanceService creates a new balance aggregation service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ListUserBalances returns the per-(account, instrument) sums of all live
// legs belonging to the user. A store failure propagates unmodified: no
// retry, and never a partial result.
func (s *balanceService) ListUserBalances(ctx context.Context, userID string) ([]domain.AccountBalance, error) {
	return s.balanceRepo.SumLegAmountsByUser(ctx, userID)
}
