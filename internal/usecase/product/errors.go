// Package product provides the listing use cases of the marketplace: the paginated
// "around" feed filtered by keyword and location scope, single-listing lookups and
// listing creation.
package product

import "errors"

// Sentinel errors for product use case operations.
var (
	// ErrProductNotFound indicates that the requested listing does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProductID indicates an empty listing ID.
	ErrInvalidProductID = errors.New("invalid product ID")

	// ErrUserNotFound indicates that the user whose location scope was requested
	// does not exist.
	ErrUserNotFound = errors.New("user not found")
)
