package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/codenamekii/Jobless/internal/platform/httpx"
	"github.com/codenamekii/Jobless/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gate      *Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate *Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		gate:      gate,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/refresh", h.handleRefresh)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth)
		r.Post("/logout", h.handleLogout)
		r.Get("/me", h.handleMe)
	})
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	result, err := h.service.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		h.respondError(w, "register", err)
		return
	}
	httpx.OK(w, http.StatusCreated, result)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, "login", err)
		return
	}
	httpx.OK(w, http.StatusOK, result)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		// Any refresh failure surfaces as 401, store failures included.
		if httpx.IsUnexpected(err) {
			h.logger.Error("refresh failed", slog.Any("error", err))
		}
		httpx.Fail(w, http.StatusUnauthorized, shared.UserSafeMessage(shared.ErrInvalidRefreshToken))
		return
	}
	httpx.OK(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	// The body is optional; a missing or unreadable one means "log out
	// everywhere".
	var req logoutRequest
	_ = httpx.DecodeJSON(r, &req)

	if err := h.service.Logout(r.Context(), identity.UserID, req.RefreshToken); err != nil {
		h.respondError(w, "logout", err)
		return
	}
	httpx.OKMessage(w, "Logged out successfully")
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	profile, err := h.service.GetUser(r.Context(), identity.UserID)
	if err != nil {
		h.respondError(w, "get user", err)
		return
	}
	httpx.OK(w, http.StatusOK, profile)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if httpx.IsUnexpected(err) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
