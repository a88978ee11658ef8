package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/stock/application/services"
	"github.com/ghuser/stockroom/services/stock/domain/models"
)

// SearchResponse is returned by GET /stock/search.
type SearchResponse struct {
	Query   string                `json:"query"   example:"air max blk"`
	Results []models.SearchResult `json:"results"`
	Status  models.CatalogStatus  `json:"status"`
} // @name SearchResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"stock sync failed: feed responded 502 Bad Gateway"`
} // @name ErrorResponse

// GetSearchHandler handles GET /stock/search requests.
type GetSearchHandler struct {
	svc *appsvcs.Services
}

// NewGetSearchHandler returns a GetSearchHandler backed by the given services.
func NewGetSearchHandler(svc *appsvcs.Services) *GetSearchHandler {
	return &GetSearchHandler{svc: svc}
}

// Execute searches the synced stock catalog.
//
//	@Summary		Search stock
//	@Description	Fuzzy search over product and group names. Queries shorter than two characters return no results.
//	@Tags			stock
//	@Produce		json
//	@Param			q	query		string	true	"Search text"
//	@Success		200	{object}	SearchResponse
//	@Router			/stock/search [get]
func (h *GetSearchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	httpx.JSON(w, http.StatusOK, SearchResponse{
		Query:   q,
		Results: h.svc.Catalog.Search(r.Context(), q),
		Status:  h.svc.Catalog.Status(),
	})
}
