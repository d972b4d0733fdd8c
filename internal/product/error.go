package product

import "thrift-store-be/internal/apperror"

var (
	ErrProductNotFound  = apperror.NotFound("Product not found")
	ErrNamePriceMissing = apperror.Validation("Name and price are required")
	ErrEmptyName        = apperror.Validation("Name cannot be empty")
	ErrInvalidPrice     = apperror.Validation("Price must be a non-negative number")
	ErrAdminRequired    = apperror.Forbidden("Admin access required")
)
