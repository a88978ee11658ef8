package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/history/application/services"
	historydomain "github.com/ghuser/stockroom/services/history/domain"
)

// ConfirmRevertRequest is the request body for POST /history/revert/confirm.
type ConfirmRevertRequest struct {
	Passphrase string `json:"passphrase" validate:"max=200"`
} // @name ConfirmRevertRequest

// RevertHandler serves the select, inspect, cancel and confirm steps of a revert.
type RevertHandler struct {
	svc *appsvcs.Services
}

// NewRevertHandler returns a RevertHandler backed by the given services.
func NewRevertHandler(svc *appsvcs.Services) *RevertHandler {
	return &RevertHandler{svc: svc}
}

// Select marks a revision as the caller's revert target.
//
//	@Summary		Select revert target
//	@Tags			history
//	@Produce		json
//	@Param			id	path		string	true	"Revision ID"
//	@Success		200	{object}	PendingResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/history/{id}/select [post]
func (h *RevertHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.Revert.Select(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, PendingResponse{Revision: p.Entry, Exists: p.Exists})
}

// Pending returns the caller's selection.
//
//	@Summary		Pending revert
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	PendingResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/history/revert [get]
func (h *RevertHandler) Pending(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Revert.Pending(r.Context())
	if !ok {
		errhttp.WriteError(w, historydomain.ErrNoPendingRevert)
		return
	}
	httpx.JSON(w, http.StatusOK, PendingResponse{Revision: p.Entry, Exists: p.Exists})
}

// Cancel drops the caller's selection.
//
//	@Summary		Cancel revert
//	@Tags			history
//	@Success		204
//	@Failure		409	{object}	ErrorResponse
//	@Router			/history/revert [delete]
func (h *RevertHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Revert.Cancel(r.Context()); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Confirm restores the selected revision and drops every newer one.
//
//	@Summary		Confirm revert
//	@Tags			history
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ConfirmRevertRequest	true	"Confirmation"
//	@Success		200		{object}	RevertResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/history/revert/confirm [post]
func (h *RevertHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ConfirmRevertRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Revert.Confirm(r.Context(), req.Passphrase)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, RevertResponse{
		Revision:       res.Entry,
		RestoredOrders: res.RestoredOrders,
		Remaining:      res.Remaining,
	})
}
