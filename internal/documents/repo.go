package documents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codenamekii/Jobless/internal/shared"
)

// Repository defines persistence operations for document metadata.
type Repository interface {
	ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]Document, error)
	Create(ctx context.Context, userID uuid.UUID, doc *Document) error
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

// ListByApplication returns the documents of an owned application.
func (r *PGRepository) ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.application_id, d.file_name, d.file_type, d.file_url, d.created_at
		 FROM documents d
		 JOIN applications a ON a.id = d.application_id
		 WHERE d.application_id = $1 AND a.user_id = $2
		 ORDER BY d.created_at DESC`, applicationID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.ApplicationID, &doc.FileName,
			&doc.FileType, &doc.FileURL, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Create attaches metadata to an owned application.
func (r *PGRepository) Create(ctx context.Context, userID uuid.UUID, doc *Document) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO documents (id, application_id, file_name, file_type, file_url)
		 SELECT $1, a.id, $3, $4, $5 FROM applications a WHERE a.id = $2 AND a.user_id = $6
		 RETURNING created_at`,
		doc.ID, doc.ApplicationID, doc.FileName, doc.FileType, doc.FileURL, userID,
	).Scan(&doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes owned document metadata.
func (r *PGRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM documents d
		 USING applications a
		 WHERE d.id = $1 AND d.application_id = a.id AND a.user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
