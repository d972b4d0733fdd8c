package handler

import (
	"net/http"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/order"
	"thrift-store-be/internal/transport"
)

type statusResponse struct {
	Message string       `json:"message"`
	Order   *order.Order `json:"order"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	orders, err := h.orders.List(r.Context(), id)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, orders)
	return nil
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	orderID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	o, err := h.orders.Get(r.Context(), id, orderID)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, o)
	return nil
}

func (h *Handler) SellerOrders(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	sellerID, err := transport.ParamID(r, "seller_id")
	if err != nil {
		return err
	}

	orders, err := h.orders.ListBySeller(r.Context(), id, sellerID)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, orders)
	return nil
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	var in order.CheckoutInput
	if err := transport.Decode(r, &in); err != nil {
		return err
	}

	o, err := h.orders.Checkout(r.Context(), id, in)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusCreated, o)
	return nil
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	orderID, err := transport.ParamID(r, "id")
	if err != nil {
		return err
	}

	var in order.StatusInput
	if err := transport.Decode(r, &in); err != nil {
		return err
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, orderID, in)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, statusResponse{Message: "Order status updated", Order: o})
	return nil
}
