package cart

import "thrift-store-be/internal/apperror"

// MaxQuantity bounds a single cart row; the schema enforces the same limit
// on merged quantities.
const MaxQuantity = 999

var (
	ErrItemIDRequired   = apperror.Validation("Item ID is required")
	ErrInvalidQuantity  = apperror.Validation("Valid quantity is required")
	ErrItemNotFound     = apperror.NotFound("Item not found")
	ErrOwnItem          = apperror.Validation("You cannot add your own item to cart")
	ErrCartItemNotFound = apperror.NotFound("Cart item not found")
)
