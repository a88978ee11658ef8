package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/audit/application/services"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditRecordResponse is one audit log line.
type AuditRecordResponse struct {
	ID         uuid.UUID      `json:"id"`
	Action     string         `json:"action"`
	Operator   string         `json:"operator"`
	OrderID    *uuid.UUID     `json:"order_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
} // @name AuditRecordResponse

// AuditResponse is returned by GET /audit.
type AuditResponse struct {
	Records []AuditRecordResponse `json:"records"`
} // @name AuditResponse

// GetAuditHandler handles GET /audit requests.
type GetAuditHandler struct {
	svc *appsvcs.Services
}

func NewGetAuditHandler(svc *appsvcs.Services) *GetAuditHandler {
	return &GetAuditHandler{svc: svc}
}

// Execute lists the most recent audit records.
//
//	@Summary		Recent audit records
//	@Tags			audit
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum records (1-500, default 50)"
//	@Success		200		{object}	AuditResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		503		{object}	map[string]string
//	@Router			/audit [get]
func (h *GetAuditHandler) Execute(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httpx.JSONError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	if h.svc.Logs == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "audit log not configured")
		return
	}

	recs, err := h.svc.Logs.Recent(r.Context(), limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	resp := AuditResponse{Records: make([]AuditRecordResponse, len(recs))}
	for i, rec := range recs {
		resp.Records[i] = AuditRecordResponse(rec)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
