package handler

import (
	"net/http"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/cart"
	"thrift-store-be/internal/item"
	"thrift-store-be/internal/metrics"
	"thrift-store-be/internal/order"
	"thrift-store-be/internal/product"
	"thrift-store-be/internal/user"
)

// Handler adapts the domain services to HTTP.
type Handler struct {
	users    user.Service
	items    item.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
	metrics  *metrics.Orders
}

type Services struct {
	Users    user.Service
	Items    item.Service
	Products product.Service
	Carts    cart.Service
	Orders   order.Service
	Metrics  *metrics.Orders
}

func New(s Services) *Handler {
	m := s.Metrics
	if m == nil {
		m = &metrics.Orders{}
	}
	return &Handler{
		users:    s.Users,
		items:    s.Items,
		products: s.Products,
		carts:    s.Carts,
		orders:   s.Orders,
		metrics:  m,
	}
}

var errNoIdentity = apperror.Unauthorized("No token provided")

// caller returns the identity attached by the auth middleware.
func caller(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		return auth.Identity{}, errNoIdentity
	}
	return id, nil
}

// authed wraps handlers that need the caller's identity.
func authed(fn func(w http.ResponseWriter, r *http.Request, id auth.Identity) error) http.Handler {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := caller(r)
		if err != nil {
			return err
		}
		return fn(w, r, id)
	})
}

// handle renders any returned error as the JSON error envelope.
func handle(fn func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			apperror.Write(w, r, err)
		}
	})
}
