package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/services/history/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/history/application/services"
)

// HistoryRoutes registers revision history, revert and operator endpoints on
// the provided chi router.
func HistoryRoutes(r chi.Router, svcs *appsvcs.Services) {
	revert := handlers.NewRevertHandler(svcs)
	r.Route("/history", func(r chi.Router) {
		r.Get("/", handlers.NewGetHistoryHandler(svcs).Execute)
		r.Get("/revert", revert.Pending)
		r.Delete("/revert", revert.Cancel)
		r.Post("/revert/confirm", revert.Confirm)
		r.Get("/{id}", handlers.NewGetRevisionHandler(svcs).Execute)
		r.Post("/{id}/select", revert.Select)
	})

	op := handlers.NewOperatorHandler(svcs)
	r.Get("/operator", op.Get)
	r.Put("/operator", op.Rename)
}
