package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatsCache drops a user's cached dashboard aggregates after a write.
type StatsCache interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Service handles reminder business logic.
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

// List returns the user's reminders, optionally filtered by completion.
func (s *Service) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]ListItem, error) {
	return s.repo.List(ctx, userID, completed)
}

// Create attaches a reminder to an owned application.
func (s *Service) Create(ctx context.Context, userID, applicationID uuid.UUID, title, description string, reminderDate time.Time) (*Reminder, error) {
	reminder := &Reminder{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		Title:         title,
		Description:   description,
		ReminderDate:  reminderDate,
	}
	if err := s.repo.Create(ctx, userID, reminder); err != nil {
		return nil, err
	}
	s.dropStats(ctx, userID)
	return reminder, nil
}

// Complete marks an owned reminder done.
func (s *Service) Complete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Complete(ctx, userID, id); err != nil {
		return err
	}
	s.dropStats(ctx, userID)
	return nil
}
