package handler

import (
	"net/http"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/metrics"
	"thrift-store-be/internal/transport"
)

type healthResponse struct {
	Message string `json:"message"`
	metrics.OrdersSnapshot
}

type protectedResponse struct {
	Message string        `json:"message"`
	User    auth.Identity `json:"user"`
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) error {
	transport.JSON(w, r, http.StatusOK, transport.Message{Message: "Welcome to Thrift Store API"})
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) error {
	transport.JSON(w, r, http.StatusOK, healthResponse{
		Message:        "API is running",
		OrdersSnapshot: h.metrics.Snapshot(),
	})
	return nil
}

func (h *Handler) Protected(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	transport.JSON(w, r, http.StatusOK, protectedResponse{Message: "Access granted", User: id})
	return nil
}
