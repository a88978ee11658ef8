package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
)

// DeleteOrderHandler handles DELETE /orders/{id} requests.
type DeleteOrderHandler struct {
	svc *appsvcs.Services
}

// NewDeleteOrderHandler returns a DeleteOrderHandler backed by the given services.
func NewDeleteOrderHandler(svc *appsvcs.Services) *DeleteOrderHandler {
	return &DeleteOrderHandler{svc: svc}
}

// Execute deletes an order.
//
//	@Summary		Delete order
//	@Tags			orders
//	@Param			id	path	string	true	"Order ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/orders/{id} [delete]
func (h *DeleteOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Store.DeleteOrder(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
