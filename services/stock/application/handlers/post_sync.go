package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/stock/application/services"
)

// PostSyncHandler handles POST /stock/sync requests.
type PostSyncHandler struct {
	svc *appsvcs.Services
}

// NewPostSyncHandler returns a PostSyncHandler backed by the given services.
func NewPostSyncHandler(svc *appsvcs.Services) *PostSyncHandler {
	return &PostSyncHandler{svc: svc}
}

// Execute refreshes the catalog from the feed. A failed sync answers 503 and
// the previous catalog stays in service.
//
//	@Summary		Sync stock feed
//	@Tags			stock
//	@Produce		json
//	@Success		200	{object}	models.CatalogStatus
//	@Failure		503	{object}	ErrorResponse
//	@Router			/stock/sync [post]
func (h *PostSyncHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Catalog.Sync(r.Context()); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.svc.Catalog.Status())
}
