package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenamekii/Jobless/internal/shared"
)

func newGateAndToken(t *testing.T) (*Middleware, string) {
	t.Helper()
	tm := NewTokenManager("gate-access", "gate-refresh", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser(), "session-1")
	require.NoError(t, err)
	return NewMiddleware(tm), pair.AccessToken
}

func identityEcho(t *testing.T, captured *shared.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := shared.IdentityFromContext(r.Context()); ok {
			*captured = identity
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	gate, token := newGateAndToken(t)

	var identity shared.Identity
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()

	gate.RequireAuth(identityEcho(t, &identity)).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "ana@example.com", identity.Email)
}

func TestRequireAuthRejectsBadHeaders(t *testing.T) {
	gate, token := newGateAndToken(t)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"lowercase":      "bearer " + token,
		"no token":       "Bearer",
		"garbage":        "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			res := httptest.NewRecorder()
			gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			})).ServeHTTP(res, req)
			assert.Equal(t, http.StatusUnauthorized, res.Code)
		})
	}
}

func TestOptionalAuthProceedsWithoutToken(t *testing.T) {
	gate, token := newGateAndToken(t)

	var identity shared.Identity
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	gate.OptionalAuth(identityEcho(t, &identity)).ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, identity.Email)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res = httptest.NewRecorder()
	gate.OptionalAuth(identityEcho(t, &identity)).ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "ana@example.com", identity.Email)
}
