package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/services/stock/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/stock/application/services"
)

// StockRoutes registers stock endpoints on the provided chi router.
func StockRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/stock", func(r chi.Router) {
		r.Get("/search", handlers.NewGetSearchHandler(svcs).Execute)
		r.Get("/products", handlers.NewGetProductsHandler(svcs).Execute)
		r.Get("/status", handlers.NewGetStatusHandler(svcs).Execute)
		r.Post("/parse", handlers.NewPostParseHandler(svcs).Execute)
		r.Post("/sync", handlers.NewPostSyncHandler(svcs).Execute)
	})
}
