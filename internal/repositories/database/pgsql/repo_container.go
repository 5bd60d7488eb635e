package pgsql

import (
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryProvider bundles all pgx-backed repositories.
type RepositoryProvider struct {
	User       portsrepo.UserRepository
	Account    portsrepo.AccountRepository
	Instrument portsrepo.InstrumentRepository
	Event      portsrepo.EventRepository
	Balance    portsrepo.BalanceRepository
}

// NewRepositoryProvider constructs all repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *RepositoryProvider {
	return &RepositoryProvider{
		User:       newPgxUserRepository(dbPool),
		Account:    newPgxAccountRepository(dbPool),
		Instrument: newPgxInstrumentRepository(dbPool),
		Event:      newPgxEventRepository(dbPool),
		Balance:    newPgxBalanceRepository(dbPool),
	}
}
