package item

import "thrift-store-be/internal/apperror"

var (
	ErrItemNotFound      = apperror.NotFound("Item not found")
	ErrTitlePriceMissing = apperror.Validation("Title and price are required")
	ErrEmptyTitle        = apperror.Validation("Title cannot be empty")
	ErrInvalidPrice      = apperror.Validation("Price must be a non-negative number")
	ErrUpdateForbidden   = apperror.Forbidden("Not authorized to update this item")
	ErrDeleteForbidden   = apperror.Forbidden("Not authorized to delete this item")
)
