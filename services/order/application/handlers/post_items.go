package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// ItemRequest is one item to add.
type ItemRequest struct {
	Article  string `json:"article"   validate:"notblank,max=200"  example:"AIR MAX"`
	Color    string `json:"color"     validate:"max=100"           example:"Black"`
	Size     string `json:"size"      validate:"max=50"            example:"6-10"`
	Quantity string `json:"quantity"  validate:"notblank,max=10"   example:"12"`
	ImageURL string `json:"image_url" validate:"omitempty,url"     example:"https://img.example/air.jpg"`
} // @name ItemRequest

// AddItemsRequest is the request body for POST /orders/{id}/items.
type AddItemsRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,max=200,dive"`
} // @name AddItemsRequest

// AddItemsResponse lists the items created, in request order.
type AddItemsResponse struct {
	Items []ItemResponse `json:"items"`
} // @name AddItemsResponse

// PostItemsHandler handles POST /orders/{id}/items requests.
type PostItemsHandler struct {
	svc *appsvcs.Services
}

// NewPostItemsHandler returns a PostItemsHandler backed by the given services.
func NewPostItemsHandler(svc *appsvcs.Services) *PostItemsHandler {
	return &PostItemsHandler{svc: svc}
}

// Execute appends items to an order. A single item is recorded as one
// added item, several as one batch.
//
//	@Summary		Add items
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Order ID"
//	@Param			request	body		AddItemsRequest	true	"Items to add"
//	@Success		201		{object}	AddItemsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/orders/{id}/items [post]
func (h *PostItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddItemsRequest](w, r)
	if !ok {
		return
	}

	ins := make([]models.ItemInput, len(req.Items))
	for i, it := range req.Items {
		ins[i] = models.ItemInput{
			Article:  strings.TrimSpace(it.Article),
			Color:    strings.TrimSpace(it.Color),
			Size:     strings.TrimSpace(it.Size),
			Quantity: strings.TrimSpace(it.Quantity),
			ImageURL: it.ImageURL,
		}
	}

	var (
		added []models.Item
		err   error
	)
	if len(ins) == 1 {
		var it models.Item
		it, err = h.svc.Store.AddItem(r.Context(), id, ins[0])
		added = []models.Item{it}
	} else {
		added, err = h.svc.Store.AddItems(r.Context(), id, ins)
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := AddItemsResponse{Items: make([]ItemResponse, len(added))}
	for i, it := range added {
		resp.Items[i] = toItemResponse(it)
	}
	httpx.JSON(w, http.StatusCreated, resp)
}
