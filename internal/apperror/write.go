package apperror

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Stack   string `json:"stack,omitempty"`
}

type envelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// Write translates err and renders the JSON error envelope.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	appErr := Translate(err)
	status := appErr.Status()

	log := logger.FromCtx(r.Context()).With(
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("kind", appErr.Kind.String()),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Warn("request rejected", zap.String("reason", appErr.Message), zap.NamedError("cause", appErr.Err))
	}

	body := errorBody{Message: appErr.Message, Status: status}
	if logger.IsDevelopment() {
		body.Stack = string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: body})
}
