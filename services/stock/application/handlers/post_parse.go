package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/stock/application/services"
	"github.com/ghuser/stockroom/services/stock/domain/models"
)

// ParseRequest is the request body for POST /stock/parse.
type ParseRequest struct {
	Texts []string `json:"texts" validate:"required,min=1,max=100,dive,max=500" example:"AIR MAX BLK/WHT (6-10) RS.450/-"`
} // @name ParseRequest

// ParseResponse holds one parsed description per input, in input order.
type ParseResponse struct {
	Parsed []models.ParsedStock `json:"parsed"`
} // @name ParseResponse

// PostParseHandler handles POST /stock/parse requests.
type PostParseHandler struct {
	svc *appsvcs.Services
}

// NewPostParseHandler returns a PostParseHandler backed by the given services.
func NewPostParseHandler(svc *appsvcs.Services) *PostParseHandler {
	return &PostParseHandler{svc: svc}
}

// Execute splits free-text stock descriptions into name, color, size and price.
//
//	@Summary		Parse stock descriptions
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ParseRequest	true	"Descriptions to parse"
//	@Success		200		{object}	ParseResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/stock/parse [post]
func (h *PostParseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ParseRequest](w, r)
	if !ok {
		return
	}
	out := make([]models.ParsedStock, len(req.Texts))
	for i, text := range req.Texts {
		out[i] = h.svc.Catalog.Parse(text)
	}
	httpx.JSON(w, http.StatusOK, ParseResponse{Parsed: out})
}
