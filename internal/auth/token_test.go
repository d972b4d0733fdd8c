package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Header Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Cookie Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Empty Bearer Falls Back to Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer ")
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		assert.Empty(t, ExtractAccessToken(req))
	})
}
