package order

import (
	"fmt"

	"thrift-store-be/internal/apperror"
)

var (
	ErrShippingRequired   = apperror.Validation("Shipping address is required")
	ErrCartEmpty          = apperror.Validation("Cart is empty")
	ErrCheckoutInProgress = apperror.Conflict("Checkout already in progress")
	ErrOrderNotFound      = apperror.NotFound("Order not found")
	ErrInvalidStatus      = apperror.Validation("Valid status is required")
	ErrAdminRequired      = apperror.Forbidden("Admin access required")
	ErrNotAuthorized      = apperror.Forbidden("Not authorized")
	ErrStatusChanged      = apperror.Conflict("Order status was changed by another request")
)

func invalidTransition(from, to Status) *apperror.Error {
	return apperror.Conflict(fmt.Sprintf("Invalid status transition from %s to %s", from, to))
}
