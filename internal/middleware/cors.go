package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

var defaultOrigins = []string{"http://localhost:3000"}

// NewCORS builds the cross-origin policy for the browser frontend.
func NewCORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}

// CORS applies the policy for the default local frontend origin.
func CORS(next http.Handler) http.Handler {
	return NewCORS(nil)(next)
}
