package domain

import "errors"

// Sentinel errors for the history domain. Use errors.Is() to check these.
var (
	// ErrRevisionNotFound indicates the revision was never recorded or has
	// been pruned from the log.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrNoPendingRevert indicates Confirm or Cancel was called while no
	// revision is selected.
	ErrNoPendingRevert = errors.New("no revert pending")

	// ErrConfirmationRejected indicates the confirmation phrase did not match.
	// The pending selection is kept.
	ErrConfirmationRejected = errors.New("revert confirmation rejected")
)
