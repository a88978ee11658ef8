package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/services/audit/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/audit/application/services"
)

// AuditRoutes registers audit endpoints on the provided chi router.
func AuditRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Get("/audit", handlers.NewGetAuditHandler(svcs).Execute)
}
