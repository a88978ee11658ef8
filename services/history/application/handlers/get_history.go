package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/history/application/services"
)

// GetHistoryHandler handles GET /history requests.
type GetHistoryHandler struct {
	svc *appsvcs.Services
}

// NewGetHistoryHandler returns a GetHistoryHandler backed by the given services.
func NewGetHistoryHandler(svc *appsvcs.Services) *GetHistoryHandler {
	return &GetHistoryHandler{svc: svc}
}

// Execute lists revisions newest first together with the caller's pending
// revert, if any.
//
//	@Summary		Revision history
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	HistoryResponse
//	@Router			/history [get]
func (h *GetHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	headers := h.svc.Log.Headers()
	resp := HistoryResponse{
		Revisions:          headers,
		Total:              len(headers),
		RequiresPassphrase: h.svc.Revert.RequiresPassphrase(),
	}
	if p, ok := h.svc.Revert.Pending(r.Context()); ok {
		resp.Pending = &PendingResponse{Revision: p.Entry, Exists: p.Exists}
	}
	httpx.JSON(w, http.StatusOK, resp)
}
