package handler

import (
	"fmt"
	"net/http"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/logger"
	"thrift-store-be/internal/middleware"
	"thrift-store-be/internal/transport"

	"github.com/julienschmidt/httprouter"
)

// DefaultMaxBodyBytes leaves room for a 5MB image plus form overhead.
const DefaultMaxBodyBytes = 10 << 20

type RouterConfig struct {
	Auth         *middleware.Authenticator
	Limiter      *middleware.RateLimiter
	CORSOrigins  []string
	Uploads      http.Handler
	MaxBodyBytes int64
}

type authedFunc func(w http.ResponseWriter, r *http.Request, id auth.Identity) error

// NewRouter registers every route and wraps the router in the middleware
// chain: request id, access log, CORS, security headers, rate limit, body cap.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	router := httprouter.New()
	router.HandleMethodNotAllowed = true
	router.NotFound = handle(func(http.ResponseWriter, *http.Request) error {
		return apperror.ErrRouteNotFound
	})
	router.MethodNotAllowed = handle(func(http.ResponseWriter, *http.Request) error {
		return apperror.ErrMethodNotAllowed
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		apperror.Write(w, r, apperror.Internal(fmt.Errorf("panic: %v", v)))
	}

	public := func(method, path string, fn func(http.ResponseWriter, *http.Request) error) {
		router.Handler(method, path, cfg.Auth.OptionalAuth(handle(fn)))
	}
	private := func(method, path string, fn authedFunc) {
		router.Handler(method, path, cfg.Auth.RequireAuth(authed(fn)))
	}

	public(http.MethodGet, "/", h.Root)
	public(http.MethodGet, "/api/health", h.Health)
	private(http.MethodGet, "/api/protected", h.Protected)

	public(http.MethodPost, "/api/auth/register", h.Register)
	public(http.MethodPost, "/api/auth/login", h.Login)
	private(http.MethodGet, "/api/auth/me", h.Me)

	public(http.MethodGet, "/api/items", h.ListItems)
	router.Handler(http.MethodGet, "/api/items/:id", h.itemOrMine(cfg.Auth))
	private(http.MethodPost, "/api/items", h.CreateItem)
	private(http.MethodPut, "/api/items/:id", h.UpdateItem)
	private(http.MethodDelete, "/api/items/:id", h.DeleteItem)

	public(http.MethodGet, "/api/products", h.ListProducts)
	public(http.MethodGet, "/api/products/:id", h.GetProduct)
	private(http.MethodPost, "/api/products", h.CreateProduct)
	private(http.MethodPost, "/api/products/upload-image", h.UploadProductImage)
	private(http.MethodPut, "/api/products/:id", h.UpdateProduct)
	private(http.MethodDelete, "/api/products/:id", h.DeleteProduct)

	private(http.MethodGet, "/api/cart", h.GetCart)
	private(http.MethodPost, "/api/cart", h.AddToCart)
	private(http.MethodDelete, "/api/cart", h.ClearCart)
	private(http.MethodPut, "/api/cart/:item_id", h.UpdateCartItem)
	private(http.MethodDelete, "/api/cart/:item_id", h.RemoveCartItem)

	private(http.MethodGet, "/api/orders", h.ListOrders)
	private(http.MethodPost, "/api/orders", h.Checkout)
	private(http.MethodGet, "/api/orders/:id", h.GetOrder)
	private(http.MethodGet, "/api/orders/:id/:seller_id", h.sellerRoute)
	private(http.MethodPut, "/api/orders/:id/status", h.UpdateOrderStatus)

	if cfg.Uploads != nil {
		router.Handler(http.MethodGet, "/uploads/*filepath", cfg.Uploads)
	}

	limit := cfg.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	var chain http.Handler = router
	chain = middleware.MaxBodyBytes(limit)(chain)
	if cfg.Limiter != nil {
		chain = cfg.Limiter.Middleware(chain)
	}
	chain = middleware.SecurityHeaders(chain)
	chain = middleware.NewCORS(cfg.CORSOrigins)(chain)
	chain = logger.LoggingMiddleware(chain)
	chain = logger.RequestIDMiddleware(chain)
	return chain
}

// itemOrMine serves GET /api/items/mine and GET /api/items/:id, which
// httprouter cannot register side by side.
func (h *Handler) itemOrMine(a *middleware.Authenticator) http.Handler {
	mine := a.RequireAuth(authed(h.MyItems))
	byID := a.OptionalAuth(handle(h.GetItem))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if transport.Param(r, "id") == "mine" {
			mine.ServeHTTP(w, r)
			return
		}
		byID.ServeHTTP(w, r)
	})
}

// sellerRoute serves GET /api/orders/seller/:seller_id.
func (h *Handler) sellerRoute(w http.ResponseWriter, r *http.Request, id auth.Identity) error {
	if transport.Param(r, "id") != "seller" {
		return apperror.ErrRouteNotFound
	}
	return h.SellerOrders(w, r, id)
}
