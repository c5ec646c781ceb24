package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codenamekii/Jobless/internal/platform/db"
	"github.com/codenamekii/Jobless/internal/shared"
)

const pgUniqueViolation = "23505"

// Repository defines persistence operations for the auth module.
type Repository interface {
	CreateUserAndSession(ctx context.Context, user *User, sess RefreshSession) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	CreateSession(ctx context.Context, sess RefreshSession) error
	// ConsumeSession deletes the session row and returns it in a single
	// statement. Concurrent refreshes racing on one id get exactly one winner;
	// the loser sees shared.ErrNotFound.
	ConsumeSession(ctx context.Context, id string) (*RefreshSession, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, is_active, email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.IsActive, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUserAndSession inserts the user row and its first refresh session in
// one transaction. A duplicate email maps to shared.ErrDuplicateAccount.
func (r *PGRepository) CreateUserAndSession(ctx context.Context, user *User, sess RefreshSession) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (id, email, password_hash, full_name, is_active, email_verified)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING created_at, updated_at`,
			user.ID, user.Email, user.PasswordHash, user.FullName, user.IsActive, user.EmailVerified,
		).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO refresh_sessions (id, user_id, token, expires_at) VALUES ($1, $2, $3, $4)`,
			sess.ID, sess.UserID, sess.Token, sess.ExpiresAt)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return shared.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

// FindUserByEmail fetches a user by email.
func (r *PGRepository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindUserByID fetches a user by id.
func (r *PGRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// CreateSession persists a new refresh session row.
func (r *PGRepository) CreateSession(ctx context.Context, sess RefreshSession) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_sessions (id, user_id, token, expires_at) VALUES ($1, $2, $3, $4)`,
		sess.ID, sess.UserID, sess.Token, sess.ExpiresAt)
	return err
}

// ConsumeSession atomically removes and returns the session row.
func (r *PGRepository) ConsumeSession(ctx context.Context, id string) (*RefreshSession, error) {
	var sess RefreshSession
	err := r.pool.QueryRow(ctx,
		`DELETE FROM refresh_sessions WHERE id = $1
		 RETURNING id, user_id, token, expires_at, created_at`,
		id,
	).Scan(&sess.ID, &sess.UserID, &sess.Token, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// DeleteSession removes a single session row.
func (r *PGRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_sessions WHERE id = $1`, id)
	return err
}

// DeleteUserSessions removes every session belonging to the user.
func (r *PGRepository) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_sessions WHERE user_id = $1`, userID)
	return err
}

// DeleteExpiredSessions purges rows past their expiry. Used by the
// sessions:purge background job.
func (r *PGRepository) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_sessions WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PGRepository)(nil)
