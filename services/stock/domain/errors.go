package domain

import "errors"

// Sentinel errors for the stock domain. Use errors.Is() to check these.
var (
	// ErrSyncFailed indicates the inventory feed could not be fetched.
	// The catalog keeps serving the previous data.
	ErrSyncFailed = errors.New("stock sync failed")

	// ErrMalformedFeed indicates the feed was fetched but could not be decoded.
	ErrMalformedFeed = errors.New("malformed stock feed")
)
