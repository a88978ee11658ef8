package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/stock/application/services"
	"github.com/ghuser/stockroom/services/stock/domain/models"
)

// GetStatusHandler handles GET /stock/status requests.
type GetStatusHandler struct {
	svc *appsvcs.Services
}

// NewGetStatusHandler returns a GetStatusHandler backed by the given services.
func NewGetStatusHandler(svc *appsvcs.Services) *GetStatusHandler {
	return &GetStatusHandler{svc: svc}
}

// Execute reports the catalog sync state.
//
//	@Summary		Stock catalog status
//	@Tags			stock
//	@Produce		json
//	@Success		200	{object}	models.CatalogStatus
//	@Router			/stock/status [get]
func (h *GetStatusHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Catalog.Status())
}

// ProductsResponse is returned by GET /stock/products.
type ProductsResponse struct {
	Products []models.StockEntry  `json:"products"`
	Status   models.CatalogStatus `json:"status"`
} // @name ProductsResponse

// GetProductsHandler handles GET /stock/products requests.
type GetProductsHandler struct {
	svc *appsvcs.Services
}

// NewGetProductsHandler returns a GetProductsHandler backed by the given services.
func NewGetProductsHandler(svc *appsvcs.Services) *GetProductsHandler {
	return &GetProductsHandler{svc: svc}
}

// Execute lists every product in feed order.
//
//	@Summary		List stock
//	@Tags			stock
//	@Produce		json
//	@Success		200	{object}	ProductsResponse
//	@Router			/stock/products [get]
func (h *GetProductsHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, ProductsResponse{
		Products: h.svc.Catalog.Products(),
		Status:   h.svc.Catalog.Status(),
	})
}
