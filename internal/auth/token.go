package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

// ExtractAccessToken reads the bearer token, falling back to the access_token cookie.
func ExtractAccessToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token
		}
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
