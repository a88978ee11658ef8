package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/operator"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/history/application/services"
)

// RenameOperatorRequest is the request body for PUT /operator.
type RenameOperatorRequest struct {
	Label string `json:"label" validate:"required" example:"Counter 2"`
} // @name RenameOperatorRequest

// OperatorHandler reads and renames the caller's device label, which
// attributes revisions and revert selections.
type OperatorHandler struct {
	svc *appsvcs.Services
}

// NewOperatorHandler returns an OperatorHandler backed by the given services.
func NewOperatorHandler(svc *appsvcs.Services) *OperatorHandler {
	return &OperatorHandler{svc: svc}
}

// Get returns the caller's label.
//
//	@Summary		Current operator
//	@Tags			operator
//	@Produce		json
//	@Success		200	{object}	OperatorResponse
//	@Router			/operator [get]
func (h *OperatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	label, _ := operator.DeviceFromCtx(r.Context())
	httpx.JSON(w, http.StatusOK, OperatorResponse{Label: label})
}

// Rename stores a new label in the caller's session.
//
//	@Summary		Rename operator
//	@Tags			operator
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RenameOperatorRequest	true	"New label"
//	@Success		200		{object}	OperatorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/operator [put]
func (h *OperatorHandler) Rename(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RenameOperatorRequest](w, r)
	if !ok {
		return
	}
	if h.svc.Sessions == nil {
		httpx.JSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "operator sessions not configured"})
		return
	}
	label, err := operator.Rename(w, r, h.svc.Sessions, req.Label)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, OperatorResponse{Label: label})
}
