// Package market holds the error taxonomy and money helpers shared by
// the catalog, offer, listing and order engines.
package market

import "errors"

var (
	// ErrUnauthenticated means no valid session / acting user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means the acting user lacks ownership or role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidAmount means a non-positive or malformed numeric input.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOutOfStock means edition availability is exhausted.
	ErrOutOfStock = errors.New("out of stock")
	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the entity left the state the transition required.
	ErrConflict = errors.New("conflict")
	// ErrUpstreamPayment means the wallet/chain step produced no usable result.
	ErrUpstreamPayment = errors.New("upstream payment failure")
)
