package reminders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codenamekii/Jobless/internal/shared"
)

// Repository defines persistence operations for reminders.
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, completed *bool) ([]ListItem, error)
	Create(ctx context.Context, userID uuid.UUID, reminder *Reminder) error
	Complete(ctx context.Context, userID, id uuid.UUID) error
	// ListDue returns incomplete, unnotified reminders due before the cutoff,
	// joined with the owning user. Consumed by the reminders:scan job.
	ListDue(ctx context.Context, cutoff time.Time) ([]DueReminder, error)
	MarkNotified(ctx context.Context, ids []uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns the user's reminders, soonest first.
func (r *PGRepository) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]ListItem, error) {
	query := `SELECT rm.id, rm.application_id, rm.title, rm.description, rm.reminder_date,
			rm.is_completed, rm.notified_at, rm.created_at,
			a.id, a.company_name, a.position, a.status
		FROM reminders rm
		JOIN applications a ON a.id = rm.application_id
		WHERE a.user_id = $1`
	args := []any{userID}
	if completed != nil {
		args = append(args, *completed)
		query += ` AND rm.is_completed = $2`
	}
	query += ` ORDER BY rm.reminder_date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListItem
	for rows.Next() {
		var item ListItem
		if err := rows.Scan(&item.ID, &item.ApplicationID, &item.Title, &item.Description,
			&item.ReminderDate, &item.IsCompleted, &item.NotifiedAt, &item.CreatedAt,
			&item.Application.ID, &item.Application.CompanyName,
			&item.Application.Position, &item.Application.Status); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create inserts a reminder for an application the user owns. A foreign or
// missing application surfaces as not found.
func (r *PGRepository) Create(ctx context.Context, userID uuid.UUID, reminder *Reminder) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reminders (id, application_id, title, description, reminder_date)
		 SELECT $1, a.id, $3, $4, $5 FROM applications a WHERE a.id = $2 AND a.user_id = $6
		 RETURNING created_at`,
		reminder.ID, reminder.ApplicationID, reminder.Title, reminder.Description,
		reminder.ReminderDate, userID,
	).Scan(&reminder.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}

// Complete marks an owned reminder done.
func (r *PGRepository) Complete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reminders rm SET is_completed = TRUE
		 FROM applications a
		 WHERE rm.id = $1 AND rm.application_id = a.id AND a.user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListDue returns reminders that should trigger a notification.
func (r *PGRepository) ListDue(ctx context.Context, cutoff time.Time) ([]DueReminder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rm.id, rm.application_id, rm.title, rm.description, rm.reminder_date,
			rm.is_completed, rm.notified_at, rm.created_at,
			u.email, u.full_name, a.company_name, a.position
		 FROM reminders rm
		 JOIN applications a ON a.id = rm.application_id
		 JOIN users u ON u.id = a.user_id
		 WHERE NOT rm.is_completed AND rm.notified_at IS NULL AND rm.reminder_date <= $1
		 ORDER BY rm.reminder_date ASC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []DueReminder
	for rows.Next() {
		var item DueReminder
		if err := rows.Scan(&item.ID, &item.ApplicationID, &item.Title, &item.Description,
			&item.ReminderDate, &item.IsCompleted, &item.NotifiedAt, &item.CreatedAt,
			&item.UserEmail, &item.UserFullName, &item.CompanyName, &item.Position); err != nil {
			return nil, err
		}
		due = append(due, item)
	}
	return due, rows.Err()
}

// MarkNotified stamps the reminders so the scanner does not fire twice.
func (r *PGRepository) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE reminders SET notified_at = now() WHERE id = ANY($1)`, ids)
	return err
}

var _ Repository = (*PGRepository)(nil)
