package applications

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

// Handler wires HTTP endpoints for application tracking.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers application routes. The surrounding router supplies
// the auth gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type createRequest struct {
	CompanyName    string     `json:"companyName" validate:"required"`
	Position       string     `json:"position" validate:"required"`
	JobType        JobType    `json:"jobType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT FREELANCE INTERNSHIP REMOTE HYBRID"`
	Location       string     `json:"location"`
	SalaryRange    string     `json:"salaryRange"`
	JobDescription string     `json:"jobDescription"`
	Method         Method     `json:"applicationMethod" validate:"omitempty,oneof=WEBSITE EMAIL LINKEDIN JOBSTREET INDEED REFERRAL DIRECT OTHER"`
	ApplicationURL string     `json:"applicationUrl" validate:"omitempty,url"`
	ContactPerson  string     `json:"contactPerson"`
	ContactEmail   string     `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone   string     `json:"contactPhone"`
	Priority       int        `json:"priority" validate:"omitempty,min=1,max=5"`
	InterviewDate  *time.Time `json:"interviewDate"`
	DeadlineDate   *time.Time `json:"deadlineDate"`
	Notes          string     `json:"notes"`
	Tags           []string   `json:"tags"`
}

type updateRequest struct {
	CompanyName    *string    `json:"companyName"`
	Position       *string    `json:"position"`
	JobType        *JobType   `json:"jobType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT FREELANCE INTERNSHIP REMOTE HYBRID"`
	Location       *string    `json:"location"`
	SalaryRange    *string    `json:"salaryRange"`
	JobDescription *string    `json:"jobDescription"`
	Method         *Method    `json:"applicationMethod" validate:"omitempty,oneof=WEBSITE EMAIL LINKEDIN JOBSTREET INDEED REFERRAL DIRECT OTHER"`
	ApplicationURL *string    `json:"applicationUrl"`
	ContactPerson  *string    `json:"contactPerson"`
	ContactEmail   *string    `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone   *string    `json:"contactPhone"`
	Status         *Status    `json:"status"`
	Priority       *int       `json:"priority" validate:"omitempty,min=1,max=5"`
	InterviewDate  *time.Time `json:"interviewDate"`
	DeadlineDate   *time.Time `json:"deadlineDate"`
	Notes          *string    `json:"notes"`
	Tags           []string   `json:"tags"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())

	var filter ListFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
		filter.Priority = &priority
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	items, pagination, err := h.service.List(r.Context(), identity.UserID, filter, page, perPage)
	if err != nil {
		h.respondError(w, "list applications", err)
		return
	}
	if items == nil {
		items = []ListItem{}
	}
	httpx.OKList(w, items, pagination.Total)
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

	app, err := h.service.Create(r.Context(), identity.UserID, CreateInput{
		CompanyName:    req.CompanyName,
		Position:       req.Position,
		JobType:        req.JobType,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
		JobDescription: req.JobDescription,
		Method:         req.Method,
		ApplicationURL: req.ApplicationURL,
		ContactPerson:  req.ContactPerson,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Priority:       req.Priority,
		InterviewDate:  req.InterviewDate,
		DeadlineDate:   req.DeadlineDate,
		Notes:          req.Notes,
		Tags:           req.Tags,
	})
	if err != nil {
		h.respondError(w, "create application", err)
		return
	}
	httpx.OK(w, http.StatusCreated, app)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	detail, err := h.service.Get(r.Context(), identity.UserID, id)
	if err != nil {
		h.respondError(w, "get application", err)
		return
	}
	httpx.OK(w, http.StatusOK, detail)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	app, err := h.service.Update(r.Context(), identity.UserID, id, UpdateInput{
		CompanyName:    req.CompanyName,
		Position:       req.Position,
		JobType:        req.JobType,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
		JobDescription: req.JobDescription,
		Method:         req.Method,
		ApplicationURL: req.ApplicationURL,
		ContactPerson:  req.ContactPerson,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Status:         req.Status,
		Priority:       req.Priority,
		InterviewDate:  req.InterviewDate,
		DeadlineDate:   req.DeadlineDate,
		Notes:          req.Notes,
		Tags:           req.Tags,
	})
	if err != nil {
		h.respondError(w, "update application", err)
		return
	}
	httpx.OK(w, http.StatusOK, app)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	identity, _ := shared.IdentityFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		h.respondError(w, "delete application", err)
		return
	}
	httpx.OKMessage(w, "Application deleted successfully")
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if httpx.IsUnexpected(err) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
