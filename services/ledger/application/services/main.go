package services

import (
	"github.com/ghuser/provchain/pkg/app"
	"github.com/ghuser/provchain/services/ledger/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Ledger *LedgerService
	Query  *QueryService
}

// New wires the ledger services with infrastructure from the Application
// container. Both services share one repository; transition events are
// published by the repository within the write transaction.
func New(a *app.Application) *Services {
	repo := postgres.NewLedgerRepository(a.Db, a.EventBus)
	return &Services{
		Ledger: NewLedgerService(repo),
		Query:  NewQueryService(repo),
	}
}
