package handlers

import (
	"github.com/ghuser/stockroom/services/history/domain/models"
	ordermodels "github.com/ghuser/stockroom/services/order/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"revision not found"`
} // @name ErrorResponse

// PendingResponse is the caller's revert selection. Exists is false when the
// selected revision has been pruned since.
type PendingResponse struct {
	Revision models.RevisionHeader `json:"revision"`
	Exists   bool                  `json:"exists"`
} // @name PendingResponse

// HistoryResponse is the revision timeline, newest first.
type HistoryResponse struct {
	Revisions          []models.RevisionHeader `json:"revisions"`
	Total              int                     `json:"total"`
	Pending            *PendingResponse        `json:"pending"`
	RequiresPassphrase bool                    `json:"requires_passphrase"`
} // @name HistoryResponse

// RevisionResponse is one revision including its snapshot.
type RevisionResponse struct {
	models.RevisionHeader
	Snapshot []ordermodels.Order `json:"snapshot"`
} // @name RevisionResponse

// RevertResponse reports a completed revert.
type RevertResponse struct {
	Revision       models.RevisionHeader `json:"revision"`
	RestoredOrders int                   `json:"restored_orders"`
	Remaining      int                   `json:"remaining_revisions"`
} // @name RevertResponse

// OperatorResponse is the caller's device label.
type OperatorResponse struct {
	Label string `json:"label" example:"PC-4821"`
} // @name OperatorResponse
