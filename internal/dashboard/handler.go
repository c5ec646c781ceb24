package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codenamekii/Jobless/internal/platform/httpx"
	"github.com/codenamekii/Jobless/internal/shared"
)

// Handler serves the dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	stats, err := h.service.Stats(r.Context(), identity.UserID)
	if err != nil {
		if httpx.IsUnexpected(err) {
			h.logger.Error("dashboard stats failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, stats)
}
