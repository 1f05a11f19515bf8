// Package storage provides the two persistence channels of the storefront:
// a durable JSON catalog document gated by a one-time write grant, and an
// embedded key-value store used for the cart and as the catalog fallback.
package storage

import "errors"

var (
	// ErrNotFound is returned when a key has no value in the key-value store.
	ErrNotFound = errors.New("storage: not found")

	// ErrGrantDenied is returned when the user declines the write grant.
	ErrGrantDenied = errors.New("storage: write grant denied")

	// ErrGrantRejected is returned when the granted file does not match the
	// expected catalog filename.
	ErrGrantRejected = errors.New("storage: write grant names a different file")
)
