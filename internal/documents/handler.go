package documents

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/codenamekii/Jobless/internal/platform/httpx"
	"github.com/codenamekii/Jobless/internal/shared"
)

// Handler wires HTTP endpoints for document metadata.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers document routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.attach)
	r.Delete("/{id}", h.remove)
}

type attachRequest struct {
	ApplicationID uuid.UUID `json:"applicationId" validate:"required"`
	FileName      string    `json:"fileName" validate:"required"`
	FileType      string    `json:"fileType"`
	FileURL       string    `json:"fileUrl" validate:"required,url"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	applicationID, err := uuid.Parse(r.URL.Query().Get("applicationId"))
	if err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	docs, err := h.service.List(r.Context(), identity.UserID, applicationID)
	if err != nil {
		h.respondError(w, "list documents", err)
		return
	}
	if docs == nil {
		docs = []Document{}
	}
	httpx.OKList(w, docs, len(docs))
}

func (h *Handler) attach(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	var req attachRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	doc, err := h.service.Attach(r.Context(), identity.UserID, req.ApplicationID,
		req.FileName, req.FileType, req.FileURL)
	if err != nil {
		h.respondError(w, "attach document", err)
		return
	}
	httpx.OK(w, http.StatusCreated, doc)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		h.respondError(w, "delete document", err)
		return
	}
	httpx.OKMessage(w, "Document deleted successfully")
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if httpx.IsUnexpected(err) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
