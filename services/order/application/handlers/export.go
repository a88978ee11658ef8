package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
)

// ExportLinkResponse is returned by POST /orders/{id}/export.
type ExportLinkResponse struct {
	Key           string    `json:"key"            example:"exports/123e4567-e89b-12d3-a456-426614174000/spring-restock-2025-03-01-pending.csv"`
	URL           string    `json:"url"`
	ExpiresAt     time.Time `json:"expires_at"`
	ItemCount     int       `json:"item_count"     example:"4"`
	TotalQuantity int       `json:"total_quantity" example:"36"`
} // @name ExportLinkResponse

// GetExportHandler handles GET /orders/{id}/export requests.
type GetExportHandler struct {
	svc *appsvcs.Services
}

// NewGetExportHandler returns a GetExportHandler backed by the given services.
func NewGetExportHandler(svc *appsvcs.Services) *GetExportHandler {
	return &GetExportHandler{svc: svc}
}

// Execute downloads the pending items of an order as CSV.
//
//	@Summary		Download pending items
//	@Tags			orders
//	@Produce		text/csv
//	@Param			id	path	string	true	"Order ID"
//	@Success		200
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/orders/{id}/export [get]
func (h *GetExportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	name, body, err := h.svc.Export.CSV(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.Attachment(w, name, "text/csv; charset=utf-8", body)
}

// PostExportHandler handles POST /orders/{id}/export requests.
type PostExportHandler struct {
	svc *appsvcs.Services
}

// NewPostExportHandler returns a PostExportHandler backed by the given services.
func NewPostExportHandler(svc *appsvcs.Services) *PostExportHandler {
	return &PostExportHandler{svc: svc}
}

// Execute uploads the pending-items CSV and returns a temporary download link.
//
//	@Summary		Share pending items
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		201	{object}	ExportLinkResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/orders/{id}/export [post]
func (h *PostExportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	link, err := h.svc.Export.Upload(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ExportLinkResponse(link))
}
