package middleware

import (
	"net/http"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/logger"
)

var ErrNoToken = apperror.Unauthorized("No token provided")

// TokenParser verifies an access token and returns its identity.
type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

type Authenticator struct {
	tokens TokenParser
}

func NewAuthenticator(tokens TokenParser) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) attach(r *http.Request, id auth.Identity) *http.Request {
	ctx := auth.WithIdentity(r.Context(), id)
	ctx = logger.WithUserID(ctx, id.ID)
	return r.WithContext(ctx)
}

// RequireAuth rejects requests without a valid token.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.ExtractAccessToken(r)
		if token == "" {
			apperror.Write(w, r, ErrNoToken)
			return
		}

		id, err := a.tokens.Parse(token)
		if err != nil {
			apperror.Write(w, r, apperror.ErrInvalidToken.Wrap(err))
			return
		}

		next.ServeHTTP(w, a.attach(r, id))
	})
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise serves the request anonymously.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := auth.ExtractAccessToken(r); token != "" {
			if id, err := a.tokens.Parse(token); err == nil {
				r = a.attach(r, id)
			}
		}
		next.ServeHTTP(w, r)
	})
}
