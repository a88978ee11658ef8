package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	"github.com/ghuser/stockroom/services/order/domain/models"
	domainsvcs "github.com/ghuser/stockroom/services/order/domain/services"
)

// OrdersResponse is returned by GET /orders.
type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
} // @name OrdersResponse

// GetOrdersHandler handles GET /orders requests.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Execute lists orders newest first, optionally filtered by status.
//
//	@Summary		List orders
//	@Tags			orders
//	@Produce		json
//	@Param			status	query		string	false	"pending, in progress or completed"
//	@Success		200		{object}	OrdersResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/orders [get]
func (h *GetOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter := models.Status(r.URL.Query().Get("status"))
	switch filter {
	case "", models.StatusPending, models.StatusInProgress, models.StatusCompleted:
	default:
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "status must be pending, in progress or completed"})
		return
	}

	resp := OrdersResponse{Orders: []OrderResponse{}}
	for _, o := range h.svc.Store.Orders() {
		if filter != "" && o.Status() != filter {
			continue
		}
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	resp.Total = len(resp.Orders)
	httpx.JSON(w, http.StatusOK, resp)
}

// GetOrderHandler handles GET /orders/{id} requests.
type GetOrderHandler struct {
	svc *appsvcs.Services
}

// NewGetOrderHandler returns a GetOrderHandler backed by the given services.
func NewGetOrderHandler(svc *appsvcs.Services) *GetOrderHandler {
	return &GetOrderHandler{svc: svc}
}

// Execute returns one order with its items sorted by article. q narrows the
// items to those whose article, color or size contains it; status and counts
// still cover the whole order.
//
//	@Summary		Get order
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Param			q	query		string	false	"Item filter"
//	@Success		200	{object}	OrderResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id} [get]
func (h *GetOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, found := h.svc.Store.GetOrder(id)
	if !found {
		errhttp.WriteError(w, orderdomain.ErrOrderNotFound)
		return
	}
	resp := toOrderResponse(o)
	resp.Items = make([]ItemResponse, 0, len(o.Items))
	for _, it := range domainsvcs.FilterItems(o.Items, r.URL.Query().Get("q")) {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
