package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/history/application/services"
	historydomain "github.com/ghuser/stockroom/services/history/domain"
)

// GetRevisionHandler handles GET /history/{id} requests.
type GetRevisionHandler struct {
	svc *appsvcs.Services
}

// NewGetRevisionHandler returns a GetRevisionHandler backed by the given services.
func NewGetRevisionHandler(svc *appsvcs.Services) *GetRevisionHandler {
	return &GetRevisionHandler{svc: svc}
}

// Execute returns one revision with the dataset it captured.
//
//	@Summary		Get revision
//	@Tags			history
//	@Produce		json
//	@Param			id	path		string	true	"Revision ID"
//	@Success		200	{object}	RevisionResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/history/{id} [get]
func (h *GetRevisionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entry, ok := h.svc.Log.Entry(id)
	if !ok {
		errhttp.WriteError(w, historydomain.ErrRevisionNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, RevisionResponse{RevisionHeader: entry.Header(), Snapshot: entry.Snapshot})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
