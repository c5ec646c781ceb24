package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the aggregate queries behind the dashboard.
type Repository interface {
	CountApplications(ctx context.Context, userID uuid.UUID) (int, error)
	CountApplicationsByStatus(ctx context.Context, userID uuid.UUID) (map[string]int, error)
	CountApplicationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CountUpcomingReminders(ctx context.Context, userID uuid.UUID, from, until time.Time) (int, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CountApplications returns the user's total application count.
func (r *PGRepository) CountApplications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// CountApplicationsByStatus groups the user's applications per funnel stage.
func (r *PGRepository) CountApplicationsByStatus(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountApplicationsSince counts applications submitted after the given time.
func (r *PGRepository) CountApplicationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1 AND application_date >= $2`,
		userID, since).Scan(&count)
	return count, err
}

// CountUpcomingReminders counts incomplete reminders inside the window.
func (r *PGRepository) CountUpcomingReminders(ctx context.Context, userID uuid.UUID, from, until time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reminders rm
		 JOIN applications a ON a.id = rm.application_id
		 WHERE a.user_id = $1 AND NOT rm.is_completed
		   AND rm.reminder_date BETWEEN $2 AND $3`,
		userID, from, until).Scan(&count)
	return count, err
}

var _ Repository = (*PGRepository)(nil)
