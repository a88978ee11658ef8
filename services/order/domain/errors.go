package domain

import "errors"

// Sentinel errors for the order domain. Use errors.Is() to check these.
var (
	// ErrValidation indicates a mutation input violates domain constraints.
	ErrValidation = errors.New("invalid order input")

	// ErrOrderNotFound indicates the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrItemNotFound indicates the referenced item does not exist in its order.
	ErrItemNotFound = errors.New("item not found")

	// ErrPersistence indicates the durable store rejected a write. The live
	// dataset is left unchanged.
	ErrPersistence = errors.New("order store unavailable")

	// ErrNothingToExport indicates every item in the order has been received.
	ErrNothingToExport = errors.New("no pending items to export")

	// ErrExportUnavailable indicates export uploads are not configured.
	ErrExportUnavailable = errors.New("export upload not configured")
)
