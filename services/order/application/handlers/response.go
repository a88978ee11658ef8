package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"order not found"`
} // @name ErrorResponse

// ItemResponse is one line item.
type ItemResponse struct {
	ID           uuid.UUID  `json:"id"`
	Article      string     `json:"article"       example:"AIR MAX"`
	Color        string     `json:"color"         example:"Black"`
	Size         string     `json:"size"          example:"6-10"`
	Quantity     string     `json:"quantity"      example:"12"`
	ImageURL     string     `json:"image_url,omitempty"`
	Received     bool       `json:"received"`
	DateCreated  time.Time  `json:"date_created"`
	DateModified *time.Time `json:"date_modified"`
	ReceivedDate *time.Time `json:"received_date"`
} // @name ItemResponse

// OrderResponse is one order with its derived status.
type OrderResponse struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"          example:"Spring restock"`
	Supplier      string         `json:"supplier"       example:"Bata"`
	Date          string         `json:"date"           example:"2025-03-01"`
	Status        models.Status  `json:"status"         example:"in progress"`
	ItemCount     int            `json:"item_count"`
	ReceivedCount int            `json:"received_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Items         []ItemResponse `json:"items"`
} // @name OrderResponse

func toOrderResponse(o models.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = toItemResponse(it)
	}
	return OrderResponse{
		ID:            o.ID,
		Title:         o.Title,
		Supplier:      o.Supplier,
		Date:          o.Date.Format(time.DateOnly),
		Status:        o.Status(),
		ItemCount:     len(o.Items),
		ReceivedCount: o.ReceivedCount(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}

func toItemResponse(it models.Item) ItemResponse {
	return ItemResponse{
		ID:           it.ID,
		Article:      it.Article,
		Color:        it.Color,
		Size:         it.Size,
		Quantity:     it.Quantity,
		ImageURL:     it.ImageURL,
		Received:     it.Received,
		DateCreated:  it.DateCreated,
		DateModified: it.DateModified,
		ReceivedDate: it.ReceivedDate,
	}
}

// pathID parses a UUID URL parameter, answering 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
