package transport

import (
	"net/http"
	"strconv"

	"thrift-store-be/internal/apperror"

	"github.com/julienschmidt/httprouter"
)

// Param returns the named path parameter matched by the router.
func Param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// ParamID parses a positive integer path parameter.
func ParamID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(Param(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ErrInvalidID
	}
	return id, nil
}

// QueryInt reads an optional integer query parameter; absent or malformed
// values yield 0 so callers fall back to their defaults.
func QueryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

// QueryID reads an optional id query parameter.
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.ErrInvalidID
	}
	return &id, nil
}
