package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindMethodNotAllowed
)

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// Error is a classified failure whose Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and message so sentinel values keep working after Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func (e *Error) Status() int { return e.Kind.Status() }

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error   { return New(KindValidation, message) }
func Unauthorized(message string) *Error { return New(KindAuth, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
