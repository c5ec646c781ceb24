package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenamekii/Jobless/internal/auth"
	"github.com/codenamekii/Jobless/internal/dashboard"
	_ "github.com/codenamekii/Jobless/testing"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenManager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager("router-access", "router-refresh", time.Minute, time.Hour)
	gate := auth.NewMiddleware(tokens)

	router := NewRouter(RouterParams{
		Logger:           logger,
		Config:           &Config{AppRequestTimeout: 5 * time.Second},
		Gate:             gate,
		AuthHandler:      auth.NewHandler(logger, auth.NewService(nil, tokens, logger), gate),
		DashboardHandler: dashboard.NewHandler(logger, nil),
	})
	return router, tokens
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestRootGreetingPersonalisation(t *testing.T) {
	router, tokens := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotContains(t, res.Body.String(), "fullName")

	pair, err := tokens.IssuePair(&auth.User{FullName: "Ana Example"}, "session-1")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Ana Example")
}

func TestAPIRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, "DENY", res.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", res.Header().Get("X-Content-Type-Options"))
}
