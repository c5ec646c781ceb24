package applications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codenamekii/Jobless/internal/shared"
)

// StatsCache drops a user's cached dashboard aggregates after a write.
type StatsCache interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Service handles application business logic.
type Service struct {
	repo  Repository
	stats StatsCache
}

// NewService builds a Service instance. stats may be nil.
func NewService(repo Repository, stats StatsCache) *Service {
	return &Service{repo: repo, stats: stats}
}

// Invalidation is best-effort; the cache TTL caps staleness when it fails.
func (s *Service) dropStats(ctx context.Context, userID uuid.UUID) {
	if s.stats == nil {
		return
	}
	_ = s.stats.Invalidate(ctx, userID)
}

// CreateInput carries the fields accepted on creation.
type CreateInput struct {
	CompanyName    string
	Position       string
	JobType        JobType
	Location       string
	SalaryRange    string
	JobDescription string
	Method         Method
	ApplicationURL string
	ContactPerson  string
	ContactEmail   string
	ContactPhone   string
	Priority       int
	InterviewDate  *time.Time
	DeadlineDate   *time.Time
	Notes          string
	Tags           []string
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	CompanyName    *string
	Position       *string
	JobType        *JobType
	Location       *string
	SalaryRange    *string
	JobDescription *string
	Method         *Method
	ApplicationURL *string
	ContactPerson  *string
	ContactEmail   *string
	ContactPhone   *string
	Status         *Status
	Priority       *int
	InterviewDate  *time.Time
	DeadlineDate   *time.Time
	Notes          *string
	Tags           []string
}

// List returns one page of the user's applications plus pagination metadata.
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter, page, perPage int) ([]ListItem, shared.Pagination, error) {
	total, err := s.repo.Count(ctx, userID, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	pagination := shared.NewPagination(page, perPage, total)
	items, err := s.repo.List(ctx, userID, filter, pagination.PerPage, pagination.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, pagination, nil
}

// Create records a new application, opening its status trail at APPLIED.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Application, error) {
	app := &Application{
		ID:             uuid.New(),
		UserID:         userID,
		CompanyName:    in.CompanyName,
		Position:       in.Position,
		JobType:        in.JobType,
		Location:       in.Location,
		SalaryRange:    in.SalaryRange,
		JobDescription: in.JobDescription,
		Method:         in.Method,
		ApplicationURL: in.ApplicationURL,
		ContactPerson:  in.ContactPerson,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		Status:         StatusApplied,
		Priority:       in.Priority,
		InterviewDate:  in.InterviewDate,
		DeadlineDate:   in.DeadlineDate,
		Notes:          in.Notes,
		Tags:           in.Tags,
	}
	if app.Priority == 0 {
		app.Priority = 3
	}
	if app.Tags == nil {
		app.Tags = []string{}
	}

	initial := StatusChange{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		ToStatus:      StatusApplied,
		Reason:        "Application created",
	}
	if err := s.repo.Create(ctx, app, initial); err != nil {
		return nil, err
	}
	s.dropStats(ctx, userID)
	return app, nil
}

// Get returns one owned application with its history.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Detail, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update applies a partial update. A status change appends a history row.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*Application, error) {
	detail, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	app := detail.Application
	previous := app.Status

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&app.CompanyName, in.CompanyName)
	applyString(&app.Position, in.Position)
	applyString(&app.Location, in.Location)
	applyString(&app.SalaryRange, in.SalaryRange)
	applyString(&app.JobDescription, in.JobDescription)
	applyString(&app.ApplicationURL, in.ApplicationURL)
	applyString(&app.ContactPerson, in.ContactPerson)
	applyString(&app.ContactEmail, in.ContactEmail)
	applyString(&app.ContactPhone, in.ContactPhone)
	applyString(&app.Notes, in.Notes)
	if in.JobType != nil {
		app.JobType = *in.JobType
	}
	if in.Method != nil {
		app.Method = *in.Method
	}
	if in.Priority != nil {
		app.Priority = *in.Priority
	}
	if in.InterviewDate != nil {
		app.InterviewDate = in.InterviewDate
	}
	if in.DeadlineDate != nil {
		app.DeadlineDate = in.DeadlineDate
	}
	if in.Tags != nil {
		app.Tags = in.Tags
	}

	var change *StatusChange
	if in.Status != nil && *in.Status != previous {
		if !in.Status.Valid() {
			return nil, shared.ErrValidation
		}
		app.Status = *in.Status
		from := previous
		change = &StatusChange{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			FromStatus:    &from,
			ToStatus:      app.Status,
			Reason:        "Status updated via API",
		}
	}

	if err := s.repo.Update(ctx, &app, change); err != nil {
		return nil, err
	}
	s.dropStats(ctx, userID)
	return &app, nil
}

// Delete removes an owned application.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.dropStats(ctx, userID)
	return nil
}
