package reminders

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/codenamekii/Jobless/internal/platform/httpx"
	"github.com/codenamekii/Jobless/internal/shared"
)

// Handler wires HTTP endpoints for reminders.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers reminder routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}/complete", h.complete)
}

type createRequest struct {
	ApplicationID uuid.UUID `json:"applicationId" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description"`
	ReminderDate  time.Time `json:"reminderDate" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	var completed *bool
	if raw := r.URL.Query().Get("isCompleted"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
		completed = &value
	}

	items, err := h.service.List(r.Context(), identity.UserID, completed)
	if err != nil {
		h.respondError(w, "list reminders", err)
		return
	}
	if items == nil {
		items = []ListItem{}
	}
	httpx.OKList(w, items, len(items))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	reminder, err := h.service.Create(r.Context(), identity.UserID, req.ApplicationID,
		req.Title, req.Description, req.ReminderDate)
	if err != nil {
		h.respondError(w, "create reminder", err)
		return
	}
	httpx.OK(w, http.StatusCreated, reminder)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	if err := h.service.Complete(r.Context(), identity.UserID, id); err != nil {
		h.respondError(w, "complete reminder", err)
		return
	}
	httpx.OKMessage(w, "Reminder completed")
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if httpx.IsUnexpected(err) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
