package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/services/order/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
)

// OrderRoutes registers order endpoints on the provided chi router.
func OrderRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", handlers.NewGetOrdersHandler(svcs).Execute)
		r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetOrderHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteOrderHandler(svcs).Execute)
			r.Get("/summary", handlers.NewGetSummaryHandler(svcs).Execute)
			r.Post("/items", handlers.NewPostItemsHandler(svcs).Execute)
			r.Patch("/items/{itemID}/toggle", handlers.NewPatchToggleHandler(svcs).Execute)
			r.Get("/export", handlers.NewGetExportHandler(svcs).Execute)
			r.Post("/export", handlers.NewPostExportHandler(svcs).Execute)
		})
	})
}
