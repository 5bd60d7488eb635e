package services

// ServiceContainer holds instances of all the application services. It is
// the entry point handlers use to reach service functionality.
type ServiceContainer struct {
	User       UserSvcFacade
	Token      TokenSvcFacade
	Account    AccountSvcFacade
	Instrument InstrumentSvcFacade
	Event      EventSvcFacade
	Balance    BalanceSvcFacade
}
