package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codenamekii/Jobless/internal/platform/db"
	"github.com/codenamekii/Jobless/internal/shared"
)

// Repository defines persistence operations for applications.
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]ListItem, error)
	Count(ctx context.Context, userID uuid.UUID, filter ListFilter) (int, error)
	Create(ctx context.Context, app *Application, initial StatusChange) error
	Get(ctx context.Context, userID, id uuid.UUID) (*Detail, error)
	Update(ctx context.Context, app *Application, change *StatusChange) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const appColumns = `a.id, a.user_id, a.company_name, a.position, a.job_type, a.location,
	a.salary_range, a.job_description, a.application_method, a.application_url,
	a.contact_person, a.contact_email, a.contact_phone, a.status, a.priority,
	a.application_date, a.interview_date, a.deadline_date, a.notes, a.tags,
	a.created_at, a.updated_at`

func scanApplication(row pgx.Row, app *Application, extra ...any) error {
	dest := []any{
		&app.ID, &app.UserID, &app.CompanyName, &app.Position, &app.JobType, &app.Location,
		&app.SalaryRange, &app.JobDescription, &app.Method, &app.ApplicationURL,
		&app.ContactPerson, &app.ContactEmail, &app.ContactPhone, &app.Status, &app.Priority,
		&app.ApplicationDate, &app.InterviewDate, &app.DeadlineDate, &app.Notes, &app.Tags,
		&app.CreatedAt, &app.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func filterClause(userID uuid.UUID, filter ListFilter) (string, []any) {
	clause := ` WHERE a.user_id = $1`
	args := []any{userID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clause += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clause += fmt.Sprintf(" AND a.priority = $%d", len(args))
	}
	return clause, args
}

// List returns a page of the user's applications, newest first, with open
// reminder and document counts.
func (r *PGRepository) List(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]ListItem, error) {
	clause, args := filterClause(userID, filter)
	query := `SELECT ` + appColumns + `,
		(SELECT COUNT(*) FROM reminders rm WHERE rm.application_id = a.id AND NOT rm.is_completed),
		(SELECT COUNT(*) FROM documents d WHERE d.application_id = a.id)
		FROM applications a` + clause
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY a.application_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListItem
	for rows.Next() {
		var item ListItem
		if err := scanApplication(rows, &item.Application, &item.OpenReminders, &item.Documents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns how many applications match the filter.
func (r *PGRepository) Count(ctx context.Context, userID uuid.UUID, filter ListFilter) (int, error) {
	clause, args := filterClause(userID, filter)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications a`+clause, args...).Scan(&total)
	return total, err
}

// Create inserts the application together with its initial status history row.
func (r *PGRepository) Create(ctx context.Context, app *Application, initial StatusChange) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO applications (id, user_id, company_name, position, job_type, location,
				salary_range, job_description, application_method, application_url,
				contact_person, contact_email, contact_phone, status, priority,
				interview_date, deadline_date, notes, tags)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			 RETURNING application_date, created_at, updated_at`,
			app.ID, app.UserID, app.CompanyName, app.Position, app.JobType, app.Location,
			app.SalaryRange, app.JobDescription, app.Method, app.ApplicationURL,
			app.ContactPerson, app.ContactEmail, app.ContactPhone, app.Status, app.Priority,
			app.InterviewDate, app.DeadlineDate, app.Notes, app.Tags,
		).Scan(&app.ApplicationDate, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO application_status_history (id, application_id, to_status, reason)
			 VALUES ($1, $2, $3, $4)`,
			initial.ID, app.ID, initial.ToStatus, initial.Reason)
		return err
	})
}

// Get returns one application with its full status history. Rows owned by
// other users surface as not found.
func (r *PGRepository) Get(ctx context.Context, userID, id uuid.UUID) (*Detail, error) {
	var detail Detail
	row := r.pool.QueryRow(ctx,
		`SELECT `+appColumns+` FROM applications a WHERE a.id = $1 AND a.user_id = $2`, id, userID)
	if err := scanApplication(row, &detail.Application); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, application_id, from_status, to_status, reason, changed_at
		 FROM application_status_history WHERE application_id = $1 ORDER BY changed_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var change StatusChange
		if err := rows.Scan(&change.ID, &change.ApplicationID, &change.FromStatus,
			&change.ToStatus, &change.Reason, &change.ChangedAt); err != nil {
			return nil, err
		}
		detail.StatusHistory = append(detail.StatusHistory, change)
	}
	return &detail, rows.Err()
}

// Update rewrites the application row and, when change is non-nil, appends a
// status history row in the same transaction.
func (r *PGRepository) Update(ctx context.Context, app *Application, change *StatusChange) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE applications SET company_name=$3, position=$4, job_type=$5, location=$6,
				salary_range=$7, job_description=$8, application_method=$9, application_url=$10,
				contact_person=$11, contact_email=$12, contact_phone=$13, status=$14, priority=$15,
				interview_date=$16, deadline_date=$17, notes=$18, tags=$19, updated_at=now()
			 WHERE id=$1 AND user_id=$2`,
			app.ID, app.UserID, app.CompanyName, app.Position, app.JobType, app.Location,
			app.SalaryRange, app.JobDescription, app.Method, app.ApplicationURL,
			app.ContactPerson, app.ContactEmail, app.ContactPhone, app.Status, app.Priority,
			app.InterviewDate, app.DeadlineDate, app.Notes, app.Tags)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if change != nil {
			if _, err := tx.Exec(ctx,
				`INSERT INTO application_status_history (id, application_id, from_status, to_status, reason)
				 VALUES ($1, $2, $3, $4, $5)`,
				change.ID, change.ApplicationID, change.FromStatus, change.ToStatus, change.Reason); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the application; history, reminders and documents cascade.
func (r *PGRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
