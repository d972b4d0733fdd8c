package handler

import (
	"net/http"

	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/cart"
	"thrift-store-be/internal/transport"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	c, err := h.carts.Get(r.Context(), id.ID)
	if err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, c)
	return nil
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	var in cart.AddInput
	if err := transport.Decode(r, &in); err != nil {
		return err
	}

	if err := h.carts.Add(r.Context(), id.ID, in); err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusCreated, transport.Message{Message: "Item added to cart"})
	return nil
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	itemID, err := transport.ParamID(r, "item_id")
	if err != nil {
		return err
	}

	var in cart.UpdateInput
	if err := transport.Decode(r, &in); err != nil {
		return err
	}

	if err := h.carts.UpdateQuantity(r.Context(), id.ID, itemID, in); err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, transport.Message{Message: "Cart updated"})
	return nil
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	itemID, err := transport.ParamID(r, "item_id")
	if err != nil {
		return err
	}

	if err := h.carts.Remove(r.Context(), id.ID, itemID); err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, transport.Message{Message: "Item removed from cart"})
	return nil
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	if err := h.carts.Clear(r.Context(), id.ID); err != nil {
		return err
	}
	transport.JSON(w, r, http.StatusOK, transport.Message{Message: "Cart cleared"})
	return nil
}
