package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/codenamekii/Jobless/testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func newAuthServer(t *testing.T) (http.Handler, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	svc := newTestService(repo)
	gate := NewMiddleware(svc.tokens)
	handler := NewHandler(discardLogger(), svc, gate)

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r, repo
}

func doJSON(t *testing.T, server http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	var env envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	return res, env
}

func registerBody() map[string]string {
	return map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
		"fullName": "Ana Example",
	}
}

func TestHandlerRegister(t *testing.T) {
	server, _ := newAuthServer(t)

	res, env := doJSON(t, server, http.MethodPost, "/auth/register", registerBody(), nil)
	assert.Equal(t, http.StatusCreated, res.Code)
	require.True(t, env.Success)

	var result Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestHandlerRegisterDuplicate(t *testing.T) {
	server, _ := newAuthServer(t)

	res, _ := doJSON(t, server, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, res.Code)

	res, env := doJSON(t, server, http.MethodPost, "/auth/register", registerBody(), nil)
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "User already exists", env.Error)
}

func TestHandlerRegisterValidation(t *testing.T) {
	server, _ := newAuthServer(t)

	body := registerBody()
	body["password"] = "short"
	res, env := doJSON(t, server, http.MethodPost, "/auth/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.False(t, env.Success)
}

func TestHandlerLoginInvalidCredentials(t *testing.T) {
	server, _ := newAuthServer(t)

	res, env := doJSON(t, server, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid credentials", env.Error)
}

func TestHandlerRefreshRotation(t *testing.T) {
	server, _ := newAuthServer(t)

	_, env := doJSON(t, server, http.MethodPost, "/auth/register", registerBody(), nil)
	var registered Result
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	res, env := doJSON(t, server, http.MethodPost, "/auth/refresh", map[string]string{
		"refreshToken": registered.RefreshToken,
	}, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	var rotated Result
	require.NoError(t, json.Unmarshal(env.Data, &rotated))
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	// Replaying the consumed token fails with the client-safe message.
	res, env = doJSON(t, server, http.MethodPost, "/auth/refresh", map[string]string{
		"refreshToken": registered.RefreshToken,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid refresh token", env.Error)
}

func TestHandlerMeRequiresAuth(t *testing.T) {
	server, _ := newAuthServer(t)

	res, env := doJSON(t, server, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Unauthorized", env.Error)
}

func TestHandlerMe(t *testing.T) {
	server, _ := newAuthServer(t)

	_, env := doJSON(t, server, http.MethodPost, "/auth/register", registerBody(), nil)
	var registered Result
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	res, env := doJSON(t, server, http.MethodGet, "/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + registered.AccessToken,
	})
	assert.Equal(t, http.StatusOK, res.Code)

	var profile Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.True(t, profile.IsActive)
}

func TestHandlerLogout(t *testing.T) {
	server, repo := newAuthServer(t)

	_, env := doJSON(t, server, http.MethodPost, "/auth/register", registerBody(), nil)
	var registered Result
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	res, env := doJSON(t, server, http.MethodPost, "/auth/logout", map[string]string{
		"refreshToken": registered.RefreshToken,
	}, map[string]string{
		"Authorization": "Bearer " + registered.AccessToken,
	})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Logged out successfully", env.Message)
	assert.Equal(t, 0, repo.sessionCount())
}
