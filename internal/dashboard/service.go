package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	recentWindow   = 7 * 24 * time.Hour
	upcomingWindow = 7 * 24 * time.Hour
)

// Service computes dashboard stats, serving from cache when possible.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs the dashboard service.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Stats returns the user's aggregate numbers. The four queries run in
// parallel; cache failures are logged and never fail the request.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	cached, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", slog.Any("error", err))
	}
	if hit {
		return cached, nil
	}

	now := time.Now()
	stats := &Stats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.CountApplications(gctx, userID)
		stats.TotalApplications = total
		return err
	})
	g.Go(func() error {
		byStatus, err := s.repo.CountApplicationsByStatus(gctx, userID)
		stats.ApplicationsByStatus = byStatus
		return err
	})
	g.Go(func() error {
		recent, err := s.repo.CountApplicationsSince(gctx, userID, now.Add(-recentWindow))
		stats.RecentApplications = recent
		return err
	})
	g.Go(func() error {
		upcoming, err := s.repo.CountUpcomingReminders(gctx, userID, now, now.Add(upcomingWindow))
		stats.UpcomingReminders = upcoming
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.ApplicationsByStatus == nil {
		stats.ApplicationsByStatus = map[string]int{}
	}
	if err := s.cache.Set(ctx, userID, stats); err != nil {
		s.logger.Warn("dashboard cache write failed", slog.Any("error", err))
	}
	return stats, nil
}
