package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
)

// SummaryResponse is returned by GET /orders/{id}/summary.
type SummaryResponse struct {
	cache.OrderSummary
	Cached bool `json:"cached"`
} // @name SummaryResponse

// GetSummaryHandler handles GET /orders/{id}/summary requests.
type GetSummaryHandler struct {
	svc *appsvcs.Services
}

// NewGetSummaryHandler returns a GetSummaryHandler backed by the given services.
func NewGetSummaryHandler(svc *appsvcs.Services) *GetSummaryHandler {
	return &GetSummaryHandler{svc: svc}
}

// Execute returns the status summary of one order.
//
//	@Summary		Order summary
//	@Description	Served from the Redis read model when warm, otherwise from the live dataset.
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	SummaryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id}/summary [get]
func (h *GetSummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sum, cached, err := h.svc.Summaries.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, SummaryResponse{OrderSummary: *sum, Cached: cached})
}
