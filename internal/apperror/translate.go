package apperror

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
)

// PostgreSQL error codes we classify.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgNumericOutOfRange   = "22003"
)

var (
	ErrDuplicateEntry      = Conflict("Duplicate entry found")
	ErrReferenceMissing    = Validation("Referenced record does not exist")
	ErrReferenceInUse      = Conflict("Referenced record is in use")
	ErrInvalidID           = Validation("Invalid ID format")
	ErrConstraintViolation = Validation("Value violates a constraint")
	ErrValueOutOfRange     = Validation("Value out of range")
	ErrInvalidToken        = Unauthorized("Invalid or expired token")
	ErrBodyTooLarge        = Validation("Request body too large")
	ErrRouteNotFound       = NotFound("Route not found")
	ErrMethodNotAllowed    = New(KindMethodNotAllowed, "Method not allowed")
	ErrTooManyRequests     = New(KindRateLimited, "Too many requests")
)

// Translate classifies any error into an *Error. Typed errors pass through,
// database and token errors are mapped, everything else becomes Internal.
func Translate(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return ErrDuplicateEntry.Wrap(err)
		case pgForeignKeyViolation:
			if strings.Contains(pqErr.Message, "update or delete") {
				return ErrReferenceInUse.Wrap(err)
			}
			return ErrReferenceMissing.Wrap(err)
		case pgInvalidText:
			return ErrInvalidID.Wrap(err)
		case pgCheckViolation:
			return ErrConstraintViolation.Wrap(err)
		case pgNumericOutOfRange:
			return ErrValueOutOfRange.Wrap(err)
		}
		return Internal(err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("Resource not found").Wrap(err)
	}

	if isTokenError(err) {
		return ErrInvalidToken.Wrap(err)
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return ErrBodyTooLarge.Wrap(err)
	}

	return Internal(err)
}

func isTokenError(err error) bool {
	return errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims)
}
