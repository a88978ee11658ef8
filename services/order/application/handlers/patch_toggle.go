package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
)

// PatchToggleHandler handles PATCH /orders/{id}/items/{itemID}/toggle requests.
type PatchToggleHandler struct {
	svc *appsvcs.Services
}

// NewPatchToggleHandler returns a PatchToggleHandler backed by the given services.
func NewPatchToggleHandler(svc *appsvcs.Services) *PatchToggleHandler {
	return &PatchToggleHandler{svc: svc}
}

// Execute flips the received flag of an item.
//
//	@Summary		Toggle received
//	@Tags			orders
//	@Produce		json
//	@Param			id		path		string	true	"Order ID"
//	@Param			itemID	path		string	true	"Item ID"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/orders/{id}/items/{itemID}/toggle [patch]
func (h *PatchToggleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	item, err := h.svc.Store.ToggleReceived(r.Context(), orderID, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
