package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/provchain/pkg/app"
	"github.com/ghuser/provchain/services/ledger/application/handlers"
	appsvcs "github.com/ghuser/provchain/services/ledger/application/services"
)

// LedgerRoutes registers ledger endpoints on the provided chi router.
func LedgerRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/stats", handlers.NewGetStatsHandler(svcs).Execute)
			r.Route("/items", func(r chi.Router) {
				r.Post("/", handlers.NewPostRegisterHandler(svcs).Execute)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handlers.NewGetItemHandler(svcs).Execute)
					r.Get("/history", handlers.NewGetHistoryHandler(svcs).Execute)
					r.Get("/verify", handlers.NewGetVerifyHandler(svcs).Execute)
					r.Post("/advance", handlers.NewPostAdvanceHandler(svcs).Execute)
					r.Post("/deliver", handlers.NewPostDeliverHandler(svcs).Execute)
				})
			})
		})
	})
}
