package user

import "thrift-store-be/internal/apperror"

var (
	ErrMissingRegisterFields = apperror.Validation("Please provide name, email, and password")
	ErrMissingLoginFields    = apperror.Validation("Please provide email and password")
	ErrEmailExists           = apperror.Validation("User with this email already exists")
	ErrInvalidCredentials    = apperror.Validation("Invalid credentials")
	ErrUserNotFound          = apperror.NotFound("User not found")
)
