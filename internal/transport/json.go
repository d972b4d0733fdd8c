package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

var ErrInvalidJSON = apperror.Validation("Invalid JSON body")

// Message is the body of responses that only confirm an action.
type Message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromCtx(r.Context()).Error("failed to encode response", zap.Error(err))
	}
}

// Decode reads a JSON body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return err
	}
	return ErrInvalidJSON.Wrap(err)
}

// IsMultipart reports whether the request carries a multipart form.
func IsMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mt, "multipart/")
}

// Text accepts a JSON string or number and keeps its literal form, so
// decimal values never pass through float64.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// StringPtr converts an optional Text into an optional string.
func (t *Text) StringPtr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(*t)
}
