// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/operator"
	historydomain "github.com/ghuser/stockroom/services/history/domain"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	stockdomain "github.com/ghuser/stockroom/services/stock/domain"
)

var hideInternal atomic.Bool

// HideInternalErrors replaces 5xx messages with the status text. Enabled in production.
func HideInternalErrors(hide bool) {
	hideInternal.Store(hide)
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, hideInternal.Load()))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, orderdomain.ErrValidation),
		errors.Is(err, operator.ErrInvalidLabel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, orderdomain.ErrItemNotFound),
		errors.Is(err, historydomain.ErrRevisionNotFound):
		return http.StatusNotFound
	case errors.Is(err, historydomain.ErrNoPendingRevert),
		errors.Is(err, orderdomain.ErrNothingToExport):
		return http.StatusConflict
	case errors.Is(err, historydomain.ErrConfirmationRejected):
		return http.StatusForbidden
	case errors.Is(err, orderdomain.ErrPersistence),
		errors.Is(err, orderdomain.ErrExportUnavailable),
		errors.Is(err, stockdomain.ErrSyncFailed),
		errors.Is(err, stockdomain.ErrMalformedFeed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
