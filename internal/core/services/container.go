package services

import (
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/repositories/database/pgsql"
	"github.com/fintrackhq/fintrack_backend/pkg/config"
)

// NewServiceContainer wires all services against the given repository
// provider and returns the container the handlers consume.
func NewServiceContainer(repos *pgsql.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.User),
		Token:      NewTokenService(cfg),
		Account:    NewAccountService(repos.Account),
		Instrument: NewInstrumentService(repos.Instrument),
		Event:      NewEventService(repos.Event, repos.Account),
		Balance:    NewBalanceService(repos.Balance),
	}
}
