package auth

import (
	"net/http"
	"strings"

	"github.com/codenamekii/Jobless/internal/platform/httpx"
	"github.com/codenamekii/Jobless/internal/shared"
)

// Middleware is the request gate: it extracts a bearer token, verifies it
// and attaches the derived identity to the request context.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the gate.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid access token.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := m.identify(r)
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), identity)))
	})
}

// OptionalAuth attaches an identity when a valid token is present and
// proceeds without one otherwise. Verification failures are swallowed.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := m.identify(r); ok {
			r = r.WithContext(shared.ContextWithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) identify(r *http.Request) (shared.Identity, bool) {
	token := extractBearer(r)
	if token == "" {
		return shared.Identity{}, false
	}
	claims, err := m.tokens.VerifyAccess(token)
	if err != nil {
		return shared.Identity{}, false
	}
	return shared.Identity{UserID: claims.UserID, Email: claims.Email, FullName: claims.FullName}, true
}

// extractBearer pulls the token out of the Authorization header. A missing or
// malformed header yields an empty token, not an error.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return ""
	}
	return token
}
