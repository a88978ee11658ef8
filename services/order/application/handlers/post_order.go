package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	Title    string `json:"title"    validate:"notblank,max=200"       example:"Spring restock"`
	Supplier string `json:"supplier" validate:"notblank,max=200"       example:"Bata"`
	Date     string `json:"date"     validate:"omitempty,calendardate" example:"2025-03-01"`
} // @name CreateOrderRequest

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute creates an empty order. The date defaults to today.
//
//	@Summary		Create order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order to create"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}
	in := models.OrderInput{
		Title:    strings.TrimSpace(req.Title),
		Supplier: strings.TrimSpace(req.Supplier),
	}
	if req.Date != "" {
		// already checked by the calendardate tag
		in.Date, _ = time.Parse(time.DateOnly, req.Date)
	}

	order, err := h.svc.Store.CreateOrder(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toOrderResponse(order))
}
